package coupon

import "strings"

// RelationOp tells the store how to change one relation of a coupon.
type RelationOp struct {
	Kind   RelationKind
	Action Action
	IDs    []string
}

// ResolveCreate attaches ids to a new coupon only when the list is non-empty.
func ResolveCreate(kind RelationKind, ids []string) RelationOp {
	ids = normalizeIDs(ids)
	if len(ids) == 0 {
		return RelationOp{Kind: kind, Action: NoOp}
	}
	return RelationOp{Kind: kind, Action: ConnectInitial, IDs: ids}
}

// ResolveUpdate replaces the relation whenever the list is present, even when
// it is empty. A nil list means the field was omitted.
func ResolveUpdate(kind RelationKind, ids *[]string) RelationOp {
	if ids == nil {
		return RelationOp{Kind: kind, Action: NoOp}
	}
	return RelationOp{Kind: kind, Action: ReplaceAll, IDs: normalizeIDs(*ids)}
}

// CreateOps resolves the create-time list of every relation kind, in
// RelationKinds order, dropping NoOps.
func CreateOps(lists map[RelationKind][]string) []RelationOp {
	ops := make([]RelationOp, 0, len(RelationKinds))
	for _, kind := range RelationKinds {
		ops = append(ops, ResolveCreate(kind, lists[kind]))
	}
	return Changes(ops...)
}

// UpdateOps resolves the update-time list of every relation kind, in
// RelationKinds order, dropping NoOps. A missing map entry is an omitted list.
func UpdateOps(lists map[RelationKind]*[]string) []RelationOp {
	ops := make([]RelationOp, 0, len(RelationKinds))
	for _, kind := range RelationKinds {
		ops = append(ops, ResolveUpdate(kind, lists[kind]))
	}
	return Changes(ops...)
}

// Changes filters out NoOp entries.
func Changes(ops ...RelationOp) []RelationOp {
	out := make([]RelationOp, 0, len(ops))
	for _, op := range ops {
		if op.Action != NoOp {
			out = append(out, op)
		}
	}
	return out
}

// normalizeIDs trims ids, drops blanks and collapses duplicates keeping the
// first occurrence.
func normalizeIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
