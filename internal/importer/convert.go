package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/capacity/internal/calendar"
	"github.com/alexanderramin/capacity/internal/capacity"
	"github.com/alexanderramin/capacity/internal/domain"
	"github.com/google/uuid"
)

// Convert transforms a validated ImportSchema into domain records ready for persistence.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema) (*capacity.Snapshot, error) {
	now := time.Now().UTC()
	snap := &capacity.Snapshot{}

	userIDs := make(map[string]string, len(schema.Users)) // ref -> ID
	for _, u := range schema.Users {
		id := idOrNew(u.ID)
		userIDs[u.Ref] = id
		snap.Users = append(snap.Users, domain.User{
			ID:                  id,
			Name:                u.Name,
			Email:               u.Email,
			DailyAvailableHours: domain.Float64FromPtrWithDefault(domain.DefaultDailyHours, u.DailyAvailableHours),
			Torre:               u.Torre,
			Active:              domain.BoolFromPtrWithDefault(true, u.Active),
			CreatedAt:           now,
			UpdatedAt:           now,
		})
	}

	projectIDs := make(map[string]string, len(schema.Projects))
	for _, p := range schema.Projects {
		id := idOrNew(p.ID)
		projectIDs[p.Ref] = id

		start, err := parseOptional(p.StartDate)
		if err != nil {
			return nil, fmt.Errorf("project %q start_date: %w", p.Ref, err)
		}
		delivery, err := parseOptional(p.EstimatedDelivery)
		if err != nil {
			return nil, fmt.Errorf("project %q estimated_delivery: %w", p.Ref, err)
		}

		projectType := domain.ProjectType(domain.CoalesceStr(p.Type, string(domain.ProjectPlanned)))
		snap.Projects = append(snap.Projects, domain.Project{
			ID:                id,
			Name:              p.Name,
			Client:            p.Client,
			Type:              projectType,
			StartDate:         start,
			EstimatedDelivery: delivery,
			Active:            domain.BoolFromPtrWithDefault(true, p.Active),
			CreatedAt:         now,
			UpdatedAt:         now,
		})
		for _, m := range p.Members {
			snap.Members = append(snap.Members, domain.ProjectMember{
				ProjectID:            id,
				UserID:               userIDs[m.UserRef],
				AllocationPercentage: m.AllocationPercentage,
			})
		}
	}

	taskIDs := make(map[string]string, len(schema.Tasks))
	for _, t := range schema.Tasks {
		task, err := convertTask(t, projectIDs, userIDs, now)
		if err != nil {
			return nil, err
		}
		taskIDs[t.Ref] = task.ID
		snap.Tasks = append(snap.Tasks, *task)
		for _, a := range t.Allocations {
			snap.Allocations = append(snap.Allocations, domain.TaskMemberAllocation{
				TaskID:        task.ID,
				UserID:        userIDs[a.UserRef],
				ReservedHours: a.ReservedHours,
			})
		}
	}

	for _, e := range schema.Timesheets {
		date, err := calendar.ParseDate(e.Date)
		if err != nil {
			return nil, fmt.Errorf("timesheet for task %q: %w", e.TaskRef, err)
		}
		snap.Timesheets = append(snap.Timesheets, domain.TimesheetEntry{
			ID:         idOrNew(e.ID),
			TaskID:     taskIDs[e.TaskRef],
			UserID:     userIDs[e.UserRef],
			Date:       date,
			TotalHours: e.Hours,
			Note:       e.Note,
			CreatedAt:  now,
		})
	}

	for _, h := range schema.Holidays {
		date, err := calendar.ParseDate(h.Date)
		if err != nil {
			return nil, fmt.Errorf("holiday %q: %w", h.Name, err)
		}
		end, err := parseOptional(h.EndDate)
		if err != nil {
			return nil, fmt.Errorf("holiday %q end_date: %w", h.Name, err)
		}
		snap.Holidays = append(snap.Holidays, domain.Holiday{
			ID:      idOrNew(h.ID),
			Name:    h.Name,
			Date:    date,
			EndDate: end,
		})
	}

	return snap, nil
}

func convertTask(t TaskImport, projectIDs, userIDs map[string]string, now time.Time) (*domain.Task, error) {
	dates := make([]*time.Time, 4)
	for i, s := range []*string{t.ScheduledStart, t.ActualStart, t.EstimatedDelivery, t.ActualDelivery} {
		d, err := parseOptional(s)
		if err != nil {
			return nil, fmt.Errorf("task %q: %w", t.Ref, err)
		}
		dates[i] = d
	}

	var collaborators []string
	for _, ref := range t.CollaboratorRefs {
		collaborators = append(collaborators, userIDs[ref])
	}

	return &domain.Task{
		ID:                idOrNew(t.ID),
		ProjectID:         projectIDs[t.ProjectRef],
		Title:             t.Title,
		DeveloperID:       userIDs[t.DeveloperRef],
		CollaboratorIDs:   collaborators,
		Status:            domain.TaskStatus(domain.CoalesceStr(t.Status, string(domain.TaskTodo))),
		EstimatedHours:    t.EstimatedHours,
		Progress:          t.Progress,
		ScheduledStart:    dates[0],
		ActualStart:       dates[1],
		EstimatedDelivery: dates[2],
		ActualDelivery:    dates[3],
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

func idOrNew(id string) string {
	if id != "" {
		return id
	}
	return uuid.New().String()
}

func parseOptional(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := calendar.ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
