package reliability

import "errors"

var (
	ErrEquipmentRequired   = errors.New("equipment id is required")
	ErrFailureCodeRequired = errors.New("failure code id is required")
	ErrFailureDateRequired = errors.New("failure date is required")
	ErrReporterRequired    = errors.New("reported by is required")
	ErrInvalidFailureDate  = errors.New("invalid failure date")
	ErrFutureFailureDate   = errors.New("failure date cannot be in the future")
	ErrNegativeMeasure     = errors.New("measure cannot be negative")
	ErrRecurrenceOrder     = errors.New("previous failure must be earlier on the same equipment")

	ErrInvalidCategory          = errors.New("invalid failure category")
	ErrInvalidSeverity          = errors.New("invalid severity")
	ErrInvalidRootCauseCategory = errors.New("invalid root cause category")

	ErrInvalidAnalysisStatus     = errors.New("invalid analysis status")
	ErrInvalidStatusTransition   = errors.New("invalid analysis status transition")
	ErrProblemStatementRequired  = errors.New("problem statement is required")
	ErrCorrectiveActionsPending  = errors.New("corrective actions still pending")
	ErrVerificationNotRequired   = errors.New("analysis does not require verification")
	ErrInvalidActionItemStatus   = errors.New("invalid action item status")
	ErrCompletedDateRequired     = errors.New("completed action item requires completed date")
	ErrInvalidOperatingHours     = errors.New("operating hours must be positive")
)
