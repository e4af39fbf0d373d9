// Package coupon holds the rules of the coupon engine that do not touch the
// store: window resolution, relation set resolution, input normalisation and
// status derivation. Everything here is pure and deterministic.
package coupon

import "time"

// Window is the [Start, End) validity interval of a coupon.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// RelationKind identifies one many-to-many relation of a coupon.
type RelationKind string

const (
	RelationProducts   RelationKind = "products"
	RelationCategories RelationKind = "categories"
	RelationUsers      RelationKind = "users"
)

// RelationKinds lists every relation kind in the order writes apply them.
var RelationKinds = []RelationKind{RelationProducts, RelationCategories, RelationUsers}

// Action is what the store must do with a relation set.
type Action int

const (
	// NoOp leaves the existing relation untouched.
	NoOp Action = iota
	// ConnectInitial attaches the listed targets to a new coupon.
	ConnectInitial
	// ReplaceAll sets the relation to exactly the listed targets.
	ReplaceAll
)

func (a Action) String() string {
	switch a {
	case ConnectInitial:
		return "connect"
	case ReplaceAll:
		return "replace"
	default:
		return "noop"
	}
}
