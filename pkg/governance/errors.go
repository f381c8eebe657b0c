package governance

import "fmt"

// MalformedRequestError indicates a change request that cannot be
// evaluated because required fields are missing or inconsistent.
type MalformedRequestError struct {
	Kind   ChangeKind
	Reason string
}

func (e *MalformedRequestError) Error() string {
	return fmt.Sprintf("malformed %s request: %s", e.Kind, e.Reason)
}

// ProjectionError indicates a change that cannot be applied to the base
// scenario, for example a target item or team that does not exist.
type ProjectionError struct {
	Kind   ChangeKind
	Target string
	Reason string
}

func (e *ProjectionError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("cannot project %s for %q: %s", e.Kind, e.Target, e.Reason)
	}
	return fmt.Sprintf("cannot project %s: %s", e.Kind, e.Reason)
}
