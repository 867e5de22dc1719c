package zpl

import "fmt"

// FormatError reports a structural problem in the command stream: a label
// was never opened with ^XA, or ^XZ appeared without a matching ^XA.
type FormatError struct {
	Reason string
}

func (e FormatError) Error() string {
	return fmt.Sprintf("zpl: format error: %s", e.Reason)
}
