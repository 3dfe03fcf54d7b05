package importer

import (
	"fmt"

	"github.com/alexanderramin/capacity/internal/calendar"
	"github.com/alexanderramin/capacity/internal/domain"
)

// refSets holds the refs declared so far, for cross-reference checks.
type refSets struct {
	users    map[string]bool
	projects map[string]bool
	tasks    map[string]bool
}

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	refs := refSets{
		users:    make(map[string]bool),
		projects: make(map[string]bool),
		tasks:    make(map[string]bool),
	}

	var errs []error
	errs = append(errs, validateUsers(schema.Users, refs)...)
	errs = append(errs, validateProjects(schema.Projects, refs)...)
	errs = append(errs, validateTasks(schema.Tasks, refs)...)
	errs = append(errs, validateTimesheets(schema.Timesheets, refs)...)
	errs = append(errs, validateHolidays(schema.Holidays)...)
	return errs
}

func validateUsers(users []UserImport, refs refSets) []error {
	var errs []error
	for i, u := range users {
		prefix := fmt.Sprintf("users[%d]", i)
		errs = append(errs, checkRef(prefix, u.Ref, refs.users)...)
		if u.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if u.DailyAvailableHours != nil && (*u.DailyAvailableHours <= 0 || *u.DailyAvailableHours > 24) {
			errs = append(errs, fmt.Errorf("%s.daily_available_hours must be in (0, 24], got %g", prefix, *u.DailyAvailableHours))
		}
	}
	return errs
}

func validateProjects(projects []ProjectImport, refs refSets) []error {
	var errs []error
	for i, p := range projects {
		prefix := fmt.Sprintf("projects[%d]", i)
		errs = append(errs, checkRef(prefix, p.Ref, refs.projects)...)
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if p.Type != "" && !domain.ValidProjectTypes[p.Type] {
			errs = append(errs, fmt.Errorf("%s.type: invalid value %q (expected planned or continuous)", prefix, p.Type))
		}
		errs = append(errs, checkWindow(prefix, "start_date", "estimated_delivery", p.StartDate, p.EstimatedDelivery)...)
		for j, m := range p.Members {
			if !refs.users[m.UserRef] {
				errs = append(errs, fmt.Errorf("%s.members[%d]: unknown user_ref %q", prefix, j, m.UserRef))
			}
			if m.AllocationPercentage < 0 || m.AllocationPercentage > 100 {
				errs = append(errs, fmt.Errorf("%s.members[%d].allocation_percentage must be in [0, 100]", prefix, j))
			}
		}
	}
	return errs
}

func validateTasks(tasks []TaskImport, refs refSets) []error {
	var errs []error
	for i, t := range tasks {
		prefix := fmt.Sprintf("tasks[%d]", i)
		errs = append(errs, checkRef(prefix, t.Ref, refs.tasks)...)
		if t.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		if !refs.projects[t.ProjectRef] {
			errs = append(errs, fmt.Errorf("%s: unknown project_ref %q", prefix, t.ProjectRef))
		}
		if t.DeveloperRef != "" && !refs.users[t.DeveloperRef] {
			errs = append(errs, fmt.Errorf("%s: unknown developer_ref %q", prefix, t.DeveloperRef))
		}
		for _, ref := range t.CollaboratorRefs {
			if !refs.users[ref] {
				errs = append(errs, fmt.Errorf("%s: unknown collaborator_ref %q", prefix, ref))
			}
		}
		if t.Status != "" && !domain.ValidTaskStatuses[t.Status] {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, t.Status))
		}
		if t.EstimatedHours < 0 {
			errs = append(errs, fmt.Errorf("%s.estimated_hours must be >= 0", prefix))
		}
		if t.Progress < 0 || t.Progress > 100 {
			errs = append(errs, fmt.Errorf("%s.progress must be in [0, 100]", prefix))
		}
		errs = append(errs, checkWindow(prefix, "scheduled_start", "estimated_delivery", t.ScheduledStart, t.EstimatedDelivery)...)
		errs = append(errs, checkOptionalDate(prefix+".actual_start", t.ActualStart)...)
		errs = append(errs, checkOptionalDate(prefix+".actual_delivery", t.ActualDelivery)...)
		for j, a := range t.Allocations {
			if !refs.users[a.UserRef] {
				errs = append(errs, fmt.Errorf("%s.allocations[%d]: unknown user_ref %q", prefix, j, a.UserRef))
			}
			if a.ReservedHours < 0 {
				errs = append(errs, fmt.Errorf("%s.allocations[%d].reserved_hours must be >= 0", prefix, j))
			}
		}
	}
	return errs
}

func validateTimesheets(entries []TimesheetImport, refs refSets) []error {
	var errs []error
	for i, e := range entries {
		prefix := fmt.Sprintf("timesheets[%d]", i)
		if !refs.tasks[e.TaskRef] {
			errs = append(errs, fmt.Errorf("%s: unknown task_ref %q", prefix, e.TaskRef))
		}
		if !refs.users[e.UserRef] {
			errs = append(errs, fmt.Errorf("%s: unknown user_ref %q", prefix, e.UserRef))
		}
		if _, err := calendar.ParseDate(e.Date); err != nil {
			errs = append(errs, fmt.Errorf("%s.date: %w", prefix, err))
		}
		if e.Hours <= 0 {
			errs = append(errs, fmt.Errorf("%s.hours must be > 0", prefix))
		}
	}
	return errs
}

func validateHolidays(holidays []HolidayImport) []error {
	var errs []error
	for i, h := range holidays {
		prefix := fmt.Sprintf("holidays[%d]", i)
		date := h.Date
		errs = append(errs, checkWindow(prefix, "date", "end_date", &date, h.EndDate)...)
	}
	return errs
}

func checkRef(prefix, ref string, seen map[string]bool) []error {
	if ref == "" {
		return []error{fmt.Errorf("%s.ref is required", prefix)}
	}
	if seen[ref] {
		return []error{fmt.Errorf("%s.ref %q is duplicated", prefix, ref)}
	}
	seen[ref] = true
	return nil
}

func checkOptionalDate(field string, s *string) []error {
	if s == nil {
		return nil
	}
	if _, err := calendar.ParseDate(*s); err != nil {
		return []error{fmt.Errorf("%s: %w", field, err)}
	}
	return nil
}

// checkWindow validates both dates and that end is not before start.
func checkWindow(prefix, startField, endField string, start, end *string) []error {
	errs := checkOptionalDate(prefix+"."+startField, start)
	errs = append(errs, checkOptionalDate(prefix+"."+endField, end)...)
	if len(errs) > 0 || start == nil || end == nil {
		return errs
	}
	s, _ := calendar.ParseDate(*start)
	e, _ := calendar.ParseDate(*end)
	if e.Before(s) {
		errs = append(errs, fmt.Errorf("%s.%s %q must not be before %s %q", prefix, endField, *end, startField, *start))
	}
	return errs
}
