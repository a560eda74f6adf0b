package report

import (
	"f0oster/orgspy/hierarchy"
	"f0oster/orgspy/snapshot"
)

// Table is a projected tabular view with a stable column order. Rows follow
// the order of the source record sequence.
type Table struct {
	Columns []string
	Rows    [][]string
}

var hierarchyColumns = []string{
	"directoryId", "directoryName",
	"groupId", "groupName",
	"userId", "userName", "userEmail",
	"notes", "platformRoles",
}

var roleMappingColumns = []string{
	"userId", "userName", "userEmail",
	"groupId", "groupName", "roleKey",
}

// HierarchyTable flattens hierarchy records into the user-hierarchy view.
// An empty input yields a well-formed table with headers and no rows.
func HierarchyTable(records []snapshot.HierarchyRecord) Table {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.DirectoryID, r.DirectoryName,
			r.GroupID, r.GroupName,
			r.UserID, r.UserName, r.UserEmail,
			r.Notes, r.PlatformRoles,
		})
	}
	return Table{Columns: hierarchyColumns, Rows: rows}
}

// RoleMappingTable flattens role mapping records into the user-role view.
func RoleMappingTable(roles []hierarchy.RoleMappingRecord) Table {
	rows := make([][]string, 0, len(roles))
	for _, m := range roles {
		rows = append(rows, []string{
			m.UserID, m.UserName, m.UserEmail,
			m.GroupID, m.GroupName, m.RoleKey,
		})
	}
	return Table{Columns: roleMappingColumns, Rows: rows}
}

// Summary aggregates a record set for the at-a-glance view.
type Summary struct {
	Directories int `json:"directories"`
	Groups      int `json:"groups"`
	Users       int `json:"users"`
	Records     int `json:"records"`
}

func Summarize(records []snapshot.HierarchyRecord) Summary {
	dirs := make(map[string]bool)
	groups := make(map[string]bool)
	users := make(map[string]bool)
	for _, r := range records {
		dirs[r.DirectoryID] = true
		groups[r.DirectoryID+"/"+r.GroupID] = true
		users[r.UserID] = true
	}
	return Summary{
		Directories: len(dirs),
		Groups:      len(groups),
		Users:       len(users),
		Records:     len(records),
	}
}
