package diff

import "f0oster/orgspy/snapshot"

// FindChanges compares two crawl record sets keyed by (directory, group, user)
// and returns the membership drift between them: triples only in curr are
// additions, triples only in prev are removals, triples in both whose
// name/email/role fields moved are changes. Output order follows curr, then
// prev for removals, so repeated comparisons are stable.
func FindChanges(prev, curr []snapshot.HierarchyRecord) []MembershipChange {
	prevByKey := indexByKey(prev)
	currByKey := indexByKey(curr)

	var changes []MembershipChange

	seen := make(map[snapshot.Key]bool, len(curr))
	for i := range curr {
		record := curr[i]
		key := record.Key()
		if seen[key] {
			continue
		}
		seen[key] = true

		old, exists := prevByKey[key]
		if !exists {
			changes = append(changes, MembershipChange{Kind: Added, Key: key, New: &curr[i]})
			continue
		}
		if !sameMembership(*old, record) {
			changes = append(changes, MembershipChange{Kind: Changed, Key: key, Old: old, New: &curr[i]})
		}
	}

	removed := make(map[snapshot.Key]bool, len(prev))
	for i := range prev {
		key := prev[i].Key()
		if removed[key] {
			continue
		}
		removed[key] = true
		if _, exists := currByKey[key]; !exists {
			changes = append(changes, MembershipChange{Kind: Removed, Key: key, Old: &prev[i]})
		}
	}

	return changes
}

// indexByKey maps each key to its first occurrence. Resumed append-only
// snapshots can hold duplicate triples; the first emission wins.
func indexByKey(records []snapshot.HierarchyRecord) map[snapshot.Key]*snapshot.HierarchyRecord {
	index := make(map[snapshot.Key]*snapshot.HierarchyRecord, len(records))
	for i := range records {
		key := records[i].Key()
		if _, exists := index[key]; !exists {
			index[key] = &records[i]
		}
	}
	return index
}

func sameMembership(a, b snapshot.HierarchyRecord) bool {
	return a.UserName == b.UserName &&
		a.UserEmail == b.UserEmail &&
		a.Notes == b.Notes &&
		a.PlatformRoles == b.PlatformRoles &&
		a.DirectoryName == b.DirectoryName &&
		a.GroupName == b.GroupName
}
