package schedule

import "errors"

var (
	// ErrConfiguration matches every *ConfigurationError via errors.Is.
	ErrConfiguration = errors.New("schedule: configuration error")
	ErrInvalidRange  = errors.New("schedule: date range is inverted")
)

const (
	reasonMissingPainter = "a painter must be passed to the schedule controller"
	reasonInvertedRange  = "End date can not be before the start date"
)

// ConfigurationError is returned by Initialize when no usable controller
// can be built. The instance is never partially constructed.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	return e.Reason
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
