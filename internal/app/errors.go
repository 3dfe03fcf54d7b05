package app

type CapacityErrorCode string

const (
	CapacityErrInvalidMonth CapacityErrorCode = "INVALID_MONTH"
	CapacityErrInvalidDate  CapacityErrorCode = "INVALID_DATE"
	CapacityErrInvalidHours CapacityErrorCode = "INVALID_HOURS"
	CapacityErrUserNotFound CapacityErrorCode = "USER_NOT_FOUND"
	CapacityErrTaskNotFound CapacityErrorCode = "TASK_NOT_FOUND"
)

type CapacityError struct {
	Code    CapacityErrorCode
	Message string
}

func (e *CapacityError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// IsNotFound reports whether the code describes a missing entity.
func (e *CapacityError) IsNotFound() bool {
	return e.Code == CapacityErrUserNotFound || e.Code == CapacityErrTaskNotFound
}
