package domain

type ProjectType string

const (
	ProjectPlanned    ProjectType = "planned"
	ProjectContinuous ProjectType = "continuous"
)

// ValidProjectTypes is the canonical set of accepted project type strings.
var ValidProjectTypes = map[string]bool{
	"planned": true, "continuous": true,
}

type TaskStatus string

const (
	TaskTodo       TaskStatus = "Todo"
	TaskInProgress TaskStatus = "In Progress"
	TaskReview     TaskStatus = "Review"
	TaskTesting    TaskStatus = "Testing"
	TaskDone       TaskStatus = "Done"
	TaskCancelled  TaskStatus = "Cancelled"
)

// ValidTaskStatuses is the canonical set of accepted task status strings.
var ValidTaskStatuses = map[string]bool{
	"Todo": true, "In Progress": true, "Review": true,
	"Testing": true, "Done": true, "Cancelled": true,
}

type OccupancyStatus string

const (
	OccupancyAvailable  OccupancyStatus = "Disponível"
	OccupancyHigh       OccupancyStatus = "Alto"
	OccupancyOverloaded OccupancyStatus = "Sobrecarregado"
)

// NonOperationalTorre marks users that do not take delivery work.
const NonOperationalTorre = "N/A"

// DefaultDailyHours applies when a user has no daily availability configured.
const DefaultDailyHours = 8.0
