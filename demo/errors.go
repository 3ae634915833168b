package demo

import "fmt"

// InitError reports a failed initialization phase. Start returns it instead of
// leaving the demo without a running simulation.
type InitError struct {
	Phase string
	Err   error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("demo: %s initialization failed: %v", e.Phase, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}
