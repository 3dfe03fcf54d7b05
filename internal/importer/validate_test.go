package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validImport = `{
  "users": [
    {"ref": "ana", "name": "Ana", "daily_available_hours": 6, "torre": "Dev"},
    {"ref": "bia", "name": "Bia"},
    {"ref": "gil", "name": "Gil", "torre": "N/A"}
  ],
  "projects": [
    {"ref": "portal", "name": "Portal", "client": "ACME", "type": "planned",
     "start_date": "2025-03-03", "estimated_delivery": "2025-04-30",
     "members": [{"user_ref": "ana", "allocation_percentage": 50}]},
    {"ref": "sust", "name": "Sustentação", "type": "continuous"}
  ],
  "tasks": [
    {"ref": "login", "project_ref": "portal", "title": "Login", "developer_ref": "ana",
     "collaborator_refs": ["bia"], "status": "In Progress", "estimated_hours": 40,
     "scheduled_start": "2025-03-10", "estimated_delivery": "2025-03-21",
     "allocations": [{"user_ref": "ana", "reserved_hours": 30}]},
    {"ref": "api", "project_ref": "portal", "title": "API", "estimated_hours": 16}
  ],
  "timesheets": [
    {"task_ref": "login", "user_ref": "ana", "date": "2025-03-10", "hours": 4, "note": "kickoff"}
  ],
  "holidays": [
    {"name": "Carnaval", "date": "2025-03-03", "end_date": "2025-03-04"}
  ]
}`

func mustParse(t *testing.T, data string) *ImportSchema {
	t.Helper()
	schema, err := ParseImportSchema([]byte(data))
	require.NoError(t, err)
	return schema
}

func joinErrs(errs []error) string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

func TestValidate_ValidSchema(t *testing.T) {
	errs := ValidateImportSchema(mustParse(t, validImport))
	assert.Empty(t, errs, joinErrs(errs))
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := ParseImportSchema([]byte(`{"users": [{"ref": "a", "name": "A", "salary": 1}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "salary")
}

func TestValidate_DuplicateAndMissingRefs(t *testing.T) {
	schema := mustParse(t, `{
	  "users": [{"ref": "ana", "name": "Ana"}, {"ref": "ana", "name": "Ana 2"}, {"name": "No ref"}],
	  "projects": [], "tasks": []
	}`)
	msg := joinErrs(ValidateImportSchema(schema))
	assert.Contains(t, msg, `users[1].ref "ana" is duplicated`)
	assert.Contains(t, msg, "users[2].ref is required")
}

func TestValidate_UnknownCrossReferences(t *testing.T) {
	schema := mustParse(t, `{
	  "users": [{"ref": "ana", "name": "Ana"}],
	  "projects": [{"ref": "p", "name": "P", "members": [{"user_ref": "ghost"}]}],
	  "tasks": [{"ref": "t", "project_ref": "nope", "title": "T", "developer_ref": "zed",
	             "collaborator_refs": ["yan"], "estimated_hours": 4,
	             "allocations": [{"user_ref": "xis", "reserved_hours": 2}]}],
	  "timesheets": [{"task_ref": "missing", "user_ref": "ana", "date": "2025-03-10", "hours": 1}]
	}`)
	msg := joinErrs(ValidateImportSchema(schema))
	assert.Contains(t, msg, `unknown user_ref "ghost"`)
	assert.Contains(t, msg, `unknown project_ref "nope"`)
	assert.Contains(t, msg, `unknown developer_ref "zed"`)
	assert.Contains(t, msg, `unknown collaborator_ref "yan"`)
	assert.Contains(t, msg, `unknown user_ref "xis"`)
	assert.Contains(t, msg, `unknown task_ref "missing"`)
}

func TestValidate_FieldRules(t *testing.T) {
	schema := mustParse(t, `{
	  "users": [{"ref": "ana", "name": "Ana", "daily_available_hours": 0}],
	  "projects": [{"ref": "p", "name": "P", "type": "retainer",
	                "start_date": "2025-05-01", "estimated_delivery": "2025-04-01"}],
	  "tasks": [{"ref": "t", "project_ref": "p", "title": "T", "status": "Blocked",
	             "estimated_hours": -1, "progress": 120, "scheduled_start": "03/10/2025"}],
	  "timesheets": [{"task_ref": "t", "user_ref": "ana", "date": "2025-03-10", "hours": 0}],
	  "holidays": [{"name": "X", "date": "2025-03-05", "end_date": "2025-03-04"}]
	}`)
	errs := ValidateImportSchema(schema)
	msg := joinErrs(errs)
	assert.Contains(t, msg, "users[0].daily_available_hours")
	assert.Contains(t, msg, `projects[0].type: invalid value "retainer"`)
	assert.Contains(t, msg, "projects[0].estimated_delivery")
	assert.Contains(t, msg, `tasks[0].status: invalid value "Blocked"`)
	assert.Contains(t, msg, "tasks[0].estimated_hours must be >= 0")
	assert.Contains(t, msg, "tasks[0].progress must be in [0, 100]")
	assert.Contains(t, msg, "tasks[0].scheduled_start")
	assert.Contains(t, msg, "timesheets[0].hours must be > 0")
	assert.Contains(t, msg, "holidays[0].end_date")
}
