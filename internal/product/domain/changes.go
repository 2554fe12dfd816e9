package domain

// ChangeKind tags a submitted child entry of an update payload.
type ChangeKind int

const (
	// ChangeCreate is an entry without an id: a new child row.
	ChangeCreate ChangeKind = iota
	// ChangeUpdate is an entry with an id and no deleted flag.
	ChangeUpdate
	// ChangeDelete is an entry with an id and deleted set.
	ChangeDelete
)

// Classify applies the reconciliation rules to one submitted child entry.
func Classify(id int64, deleted bool) ChangeKind {
	switch {
	case id == 0:
		return ChangeCreate
	case deleted:
		return ChangeDelete
	default:
		return ChangeUpdate
	}
}
