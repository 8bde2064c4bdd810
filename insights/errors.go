package insights

import "github.com/cockroachdb/errors"

// Failure taxonomy for the insight workflow. Callers classify with errors.Is;
// the HTTP layer maps each sentinel to a status code. ErrAlreadyPromoted,
// ErrInsufficientCoverage and ErrNotFound are expected, recoverable outcomes;
// ErrComputation and ErrStore are not.
var (
	ErrValidation           = errors.New("invalid input")
	ErrNotFound             = errors.New("not found")
	ErrInsufficientCoverage = errors.New("insufficient coverage for a full-day insight")
	ErrAlreadyPromoted      = errors.New("daily insight already promoted")
	ErrComputation          = errors.New("insight computation failed")
	ErrStore                = errors.New("store failure")

	// ErrHistoricalRecompute reports the phased-commit partial success: the
	// daily insight committed but the historical summary append did not. The
	// daily result is not rolled back; the summary can be retried on its own
	// via RecomputeAll.
	ErrHistoricalRecompute = errors.New("historical recompute failed after daily insight was saved")
)
