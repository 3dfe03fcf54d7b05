package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the top-level JSON structure for a capacity data import.
// Records reference each other by ref; IDs are optional and generated when absent.
type ImportSchema struct {
	Users      []UserImport      `json:"users"`
	Projects   []ProjectImport   `json:"projects"`
	Tasks      []TaskImport      `json:"tasks"`
	Timesheets []TimesheetImport `json:"timesheets,omitempty"`
	Holidays   []HolidayImport   `json:"holidays,omitempty"`
}

type UserImport struct {
	Ref                 string   `json:"ref"`
	ID                  string   `json:"id,omitempty"`
	Name                string   `json:"name"`
	Email               string   `json:"email,omitempty"`
	DailyAvailableHours *float64 `json:"daily_available_hours,omitempty"`
	Torre               string   `json:"torre,omitempty"`
	Active              *bool    `json:"active,omitempty"`
}

type ProjectImport struct {
	Ref               string         `json:"ref"`
	ID                string         `json:"id,omitempty"`
	Name              string         `json:"name"`
	Client            string         `json:"client,omitempty"`
	Type              string         `json:"type,omitempty"`
	StartDate         *string        `json:"start_date,omitempty"`
	EstimatedDelivery *string        `json:"estimated_delivery,omitempty"`
	Active            *bool          `json:"active,omitempty"`
	Members           []MemberImport `json:"members,omitempty"`
}

type MemberImport struct {
	UserRef              string  `json:"user_ref"`
	AllocationPercentage float64 `json:"allocation_percentage,omitempty"`
}

type TaskImport struct {
	Ref               string             `json:"ref"`
	ID                string             `json:"id,omitempty"`
	ProjectRef        string             `json:"project_ref"`
	Title             string             `json:"title"`
	DeveloperRef      string             `json:"developer_ref,omitempty"`
	CollaboratorRefs  []string           `json:"collaborator_refs,omitempty"`
	Status            string             `json:"status,omitempty"`
	EstimatedHours    float64            `json:"estimated_hours"`
	Progress          int                `json:"progress,omitempty"`
	ScheduledStart    *string            `json:"scheduled_start,omitempty"`
	ActualStart       *string            `json:"actual_start,omitempty"`
	EstimatedDelivery *string            `json:"estimated_delivery,omitempty"`
	ActualDelivery    *string            `json:"actual_delivery,omitempty"`
	Allocations       []AllocationImport `json:"allocations,omitempty"`
}

type AllocationImport struct {
	UserRef       string  `json:"user_ref"`
	ReservedHours float64 `json:"reserved_hours"`
}

// TimesheetImport entries without an ID are appended on every import.
type TimesheetImport struct {
	ID      string  `json:"id,omitempty"`
	TaskRef string  `json:"task_ref"`
	UserRef string  `json:"user_ref"`
	Date    string  `json:"date"`
	Hours   float64 `json:"hours"`
	Note    string  `json:"note,omitempty"`
}

type HolidayImport struct {
	ID      string  `json:"id,omitempty"`
	Name    string  `json:"name"`
	Date    string  `json:"date"`
	EndDate *string `json:"end_date,omitempty"`
}

// LoadImportSchema reads and parses an import JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data)
}

// ParseImportSchema parses import JSON, rejecting unknown fields.
func ParseImportSchema(data []byte) (*ImportSchema, error) {
	var schema ImportSchema
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
