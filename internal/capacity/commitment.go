package capacity

import (
	"time"

	"github.com/alexanderramin/capacity/internal/domain"
)

// CommitmentStrategy returns the hours per day a user has structurally
// reserved by continuous-project membership. day is nil when the caller asks
// for a date-independent figure.
type CommitmentStrategy interface {
	DailyCommitment(userID string, projects []domain.Project, members []domain.ProjectMember, dailyCap float64, day *time.Time) float64
}

// NoCommitment reserves nothing. Membership-based reservation was retired in
// favor of explicit per-task allocation; whether it returns is a product call.
type NoCommitment struct{}

func (NoCommitment) DailyCommitment(string, []domain.Project, []domain.ProjectMember, float64, *time.Time) float64 {
	return 0
}

func (e *Engine) commitmentFor(userID string, snap Snapshot, dailyCap float64, day *time.Time) float64 {
	return e.commitment.DailyCommitment(userID, snap.Projects, snap.Members, dailyCap, day)
}
