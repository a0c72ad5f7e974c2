package auth

import "github.com/jacentio/storefront/model"

// Action is a mutation kind evaluated by the access policy.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Policy is the pure authorization predicate combining caller claims with
// record ownership. It takes no storage dependency; callers fetch the
// current record first and pass its owner subject.
type Policy struct {
	AdminGroup string
}

// NewPolicy creates a policy with the given admin group name
// (default "admin").
func NewPolicy(adminGroup string) Policy {
	if adminGroup == "" {
		adminGroup = "admin"
	}
	return Policy{AdminGroup: adminGroup}
}

// IsAdmin reports whether the caller belongs to the admin group.
func (p Policy) IsAdmin(c Claims) bool {
	for _, g := range c.Groups {
		if g == p.AdminGroup {
			return true
		}
	}
	return false
}

// CanMutate decides whether the caller may perform action on a record of
// the given entity. ownerSub is the record's owner subject; it is ignored
// for creates, where no record exists yet.
func (p Policy) CanMutate(c Claims, entity model.Entity, ownerSub string, action Action) bool {
	switch entity {
	case model.EntityProduct:
		// The catalog is admin-managed.
		return p.IsAdmin(c)
	case model.EntityCustomer, model.EntityOrder:
		switch action {
		case ActionCreate:
			return c.Sub != ""
		case ActionUpdate:
			return p.IsAdmin(c) || (ownerSub != "" && c.Sub == ownerSub)
		case ActionDelete:
			return p.IsAdmin(c)
		}
	}
	return false
}
