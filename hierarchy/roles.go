package hierarchy

import (
	"strings"

	"f0oster/orgspy/snapshot"
)

// RoleMappingsFromRecords reconstructs the role view from persisted hierarchy
// records: one row per role name joined into the record's notes, plus
// ORG-LEVEL rows for its platform roles. The crawl emits the same rows live;
// this exists so consumers of the checkpoint alone (the web view) get the
// role table without re-crawling.
func RoleMappingsFromRecords(records []snapshot.HierarchyRecord) []RoleMappingRecord {
	var mappings []RoleMappingRecord
	for _, r := range records {
		for _, role := range splitJoined(r.Notes) {
			mappings = append(mappings, RoleMappingRecord{
				UserID:    r.UserID,
				UserName:  r.UserName,
				UserEmail: r.UserEmail,
				GroupID:   r.GroupID,
				GroupName: r.GroupName,
				RoleKey:   role,
			})
		}
		for _, role := range splitJoined(r.PlatformRoles) {
			mappings = append(mappings, RoleMappingRecord{
				UserID:    r.UserID,
				UserName:  r.UserName,
				UserEmail: r.UserEmail,
				GroupID:   OrgLevelGroupID,
				GroupName: OrgLevelGroupName,
				RoleKey:   role,
			})
		}
	}
	return mappings
}

// splitJoined undoes the ", " join used when records are emitted.
func splitJoined(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ", ")
}
