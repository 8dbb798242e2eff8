package layout

import (
	"errors"
	"fmt"
)

// Sentinel errors. The typed errors below unwrap to these.
var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrDegenerateLayout     = errors.New("degenerate layout")
)

// InvalidConfigurationError reports a page or card value rejected before
// any layout is computed.
type InvalidConfigurationError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s = %g: %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidConfigurationError) Unwrap() error { return ErrInvalidConfiguration }

// DegenerateLayoutError reports a grid that holds no cards. Rows and
// Columns are filled in when the caller knows the grid.
type DegenerateLayoutError struct {
	Capacity int
	Rows     int
	Columns  int
}

func (e *DegenerateLayoutError) Error() string {
	if e.Rows == 0 && e.Columns == 0 {
		return fmt.Sprintf("degenerate layout: page capacity %d, card does not fit on page", e.Capacity)
	}
	return fmt.Sprintf("degenerate layout: %d rows x %d columns, card does not fit on page", e.Rows, e.Columns)
}

func (e *DegenerateLayoutError) Unwrap() error { return ErrDegenerateLayout }
