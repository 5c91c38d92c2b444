package line

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrSeriesHasZeroElements is returned when the accumulated series is empty.
	ErrSeriesHasZeroElements = errors.New("series has zero elements")
	// ErrNotComputedYet is returned by queries made before a successful Train.
	ErrNotComputedYet = errors.New("parameter not computed yet")
)

// SeriesCountMismatchError reports x and y series of different length.
type SeriesCountMismatchError struct {
	XCount int
	YCount int
}

func (e *SeriesCountMismatchError) Error() string {
	return fmt.Sprintf("number of elements in series do not match %d:%d", e.XCount, e.YCount)
}
