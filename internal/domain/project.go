package domain

import (
	"fmt"
	"time"
)

type Project struct {
	ID                string
	Name              string
	Client            string
	Type              ProjectType
	StartDate         *time.Time
	EstimatedDelivery *time.Time
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsContinuous reports whether the project is a structural (retainer-style) commitment.
func (p *Project) IsContinuous() bool {
	return p.Type == ProjectContinuous
}

// Validate checks the fields the engine relies on.
func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("project name is required")
	}
	if !ValidProjectTypes[string(p.Type)] {
		return fmt.Errorf("project type %q must be one of planned, continuous", p.Type)
	}
	if p.StartDate != nil && p.EstimatedDelivery != nil && p.EstimatedDelivery.Before(*p.StartDate) {
		return fmt.Errorf("project estimated delivery %s is before start %s",
			p.EstimatedDelivery.Format("2006-01-02"), p.StartDate.Format("2006-01-02"))
	}
	return nil
}

// ProjectMember associates a user with a project. It no longer reserves hours
// on its own; per-task allocations do.
type ProjectMember struct {
	ProjectID            string
	UserID               string
	AllocationPercentage float64
}
