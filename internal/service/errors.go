package service

import "errors"

// Error taxonomy shared across services. Handlers map these onto HTTP
// statuses; every failure is scoped to a single user operation and is
// retryable by re-invoking it.
var (
	// ErrValidation covers malformed payloads and broken lifecycle
	// preconditions, e.g. rejecting without feedback.
	ErrValidation = errors.New("validation failed")

	// ErrNotAuthorized covers actors acting outside their scope: non-owners
	// mutating an entry, or reviewers outside the student's assignment chain.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrItemNotFound indicates a stale or foreign item reference.
	ErrItemNotFound = errors.New("submission item not found")

	// ErrStudentNotFound indicates an unknown student reference.
	ErrStudentNotFound = errors.New("student not found")

	// ErrFacultyNotFound indicates an unknown faculty reference.
	ErrFacultyNotFound = errors.New("faculty not found")

	// ErrConflict indicates the entry's status changed under a concurrent
	// reviewer and the conditional write was refused.
	ErrConflict = errors.New("submission was reviewed concurrently")
)

// Actor identifies who is invoking an operation. It is passed explicitly
// into every service call so tests can simulate multiple concurrent actors
// without shared mutable state.
type Actor struct {
	ID   uint
	Role string
}

// IsStudent reports whether the actor holds the student role.
func (a Actor) IsStudent() bool {
	return a.Role == "student"
}

// IsFaculty reports whether the actor holds the faculty role.
func (a Actor) IsFaculty() bool {
	return a.Role == "faculty"
}

// IsLeadFaculty reports whether the actor holds the lead faculty role.
func (a Actor) IsLeadFaculty() bool {
	return a.Role == "lead_faculty"
}

// IsReviewer reports whether the actor may hold reviewer authority at all.
func (a Actor) IsReviewer() bool {
	return a.IsFaculty() || a.IsLeadFaculty()
}
