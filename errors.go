package weave

import "fmt"

// panicToError normalizes a recovered panic value into an error, for
// the combinator edges (the as(f) step of As, and UnwrapSafe's
// handlers) where user code can throw and the framework must contain
// it as Result.Error instead of aborting the driver. result.Map and
// safeMatch recover their own panics without it.
func panicToError(rec any) error {
	if err, ok := rec.(error); ok {
		return err
	}
	return fmt.Errorf("%v", rec)
}
