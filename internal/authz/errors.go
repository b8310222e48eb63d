package authz

import (
	"errors"
	"fmt"
)

// ErrDenied is the sentinel wrapped by every PermissionError so callers can
// branch with errors.Is without inspecting the concrete type.
var ErrDenied = errors.New("authz: permission denied")

// PermissionError reports an action blocked by the policy table before any
// network call was made. No state changes when it is returned.
type PermissionError struct {
	Resource Resource
	Action   Action
	Role     Role
}

func (e *PermissionError) Error() string {
	who := string(e.Role)
	if who == "" {
		who = "anonymous"
	}
	return fmt.Sprintf("authz: %s may not %s %s", who, e.Action, e.Resource)
}

func (e *PermissionError) Unwrap() error { return ErrDenied }
