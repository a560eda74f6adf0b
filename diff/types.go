package diff

import "f0oster/orgspy/snapshot"

// ChangeKind classifies a membership change between two crawls.
type ChangeKind string

const (
	Added   ChangeKind = "added"
	Removed ChangeKind = "removed"
	Changed ChangeKind = "changed"
)

// MembershipChange represents a change to one (directory, group, user) triple
// between two crawl snapshots. Old is nil for additions, New for removals.
type MembershipChange struct {
	Kind ChangeKind
	Key  snapshot.Key
	Old  *snapshot.HierarchyRecord
	New  *snapshot.HierarchyRecord
}
