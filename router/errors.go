package router

import "fmt"

// AlignmentError reports a chip read requested at an x coordinate
// that is not chip-aligned.
type AlignmentError struct {
	X         int
	Alignment int
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("router: x=%d is not a multiple of %d", e.X, e.Alignment)
}
