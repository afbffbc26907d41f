package model

import "portfolio-site/pkg/auth"

// AccessArgs is what an access function sees about the caller.
type AccessArgs struct {
	User *auth.User
}

// AccessFunc decides whether an operation is permitted.
type AccessFunc func(AccessArgs) bool

// Access holds the per-operation policy of a collection.
type Access struct {
	Create AccessFunc
	Delete AccessFunc
	Read   AccessFunc
	Update AccessFunc
}

// Anyone always permits.
func Anyone(AccessArgs) bool { return true }

// Authenticated permits iff the caller is logged in.
func Authenticated(args AccessArgs) bool { return args.User != nil }

// publicRead is the single policy shared by every collection.
var publicRead = Access{
	Create: Authenticated,
	Delete: Authenticated,
	Read:   Anyone,
	Update: Authenticated,
}

// Operation names an access-checked action.
type Operation string

const (
	OpCreate Operation = "create"
	OpRead   Operation = "read"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Allows evaluates the policy for op.
func (a Access) Allows(op Operation, args AccessArgs) bool {
	var fn AccessFunc
	switch op {
	case OpCreate:
		fn = a.Create
	case OpRead:
		fn = a.Read
	case OpUpdate:
		fn = a.Update
	case OpDelete:
		fn = a.Delete
	}
	return fn != nil && fn(args)
}
