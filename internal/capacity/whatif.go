package capacity

import (
	"sort"
	"time"

	"github.com/alexanderramin/capacity/internal/domain"
)

// Synthetic records injected by SimulateNewProjectImpact. They never reach storage.
const (
	SimulatedProjectID = "__simulated_project__"
	SimulatedTaskID    = "__simulated_task__"
)

// Impact is how one user's backlog-clear date moves if they absorb the new work.
type Impact struct {
	UserID            string
	Name              string
	ReleaseDateBefore time.Time
	ReleaseDateAfter  time.Time
	IsNewSaturated    bool
}

// SimulateNewProjectImpact gives each operational user with a current backlog
// a synthetic task of the given hours and re-projects their release date.
// Results are ordered by the new realistic date, latest first. Users without a
// backlog have no baseline and are left out.
func (e *Engine) SimulateNewProjectImpact(hours float64, snap Snapshot) []Impact {
	var impacts []Impact
	for _, u := range OperationalUsers(snap.Users) {
		before := e.IndividualReleaseDate(u, snap)
		if before == nil {
			continue
		}
		after := e.IndividualReleaseDate(u, withSyntheticTask(snap, u.ID, hours))
		if after == nil {
			after = before
		}
		impacts = append(impacts, Impact{
			UserID:            u.ID,
			Name:              u.Name,
			ReleaseDateBefore: before.Realistic,
			ReleaseDateAfter:  after.Realistic,
			IsNewSaturated:    after.IsSaturated && !before.IsSaturated,
		})
	}
	sort.SliceStable(impacts, func(i, j int) bool {
		if !impacts[i].ReleaseDateAfter.Equal(impacts[j].ReleaseDateAfter) {
			return impacts[i].ReleaseDateAfter.After(impacts[j].ReleaseDateAfter)
		}
		return impacts[i].Name < impacts[j].Name
	})
	return impacts
}

// withSyntheticTask returns a copy of snap with one extra task owned solely by
// userID, hosted by a synthetic active project. snap itself is not modified.
func withSyntheticTask(snap Snapshot, userID string, hours float64) Snapshot {
	sim := snap
	sim.Projects = append(append([]domain.Project(nil), snap.Projects...), domain.Project{
		ID:     SimulatedProjectID,
		Name:   "Simulação",
		Type:   domain.ProjectPlanned,
		Active: true,
	})
	sim.Tasks = append(append([]domain.Task(nil), snap.Tasks...), domain.Task{
		ID:             SimulatedTaskID,
		ProjectID:      SimulatedProjectID,
		Title:          "Nova venda",
		DeveloperID:    userID,
		Status:         domain.TaskTodo,
		EstimatedHours: hours,
	})
	return sim
}
