package report_test

import (
	"encoding/json"
	"strings"
	"testing"

	"f0oster/orgspy/hierarchy"
	"f0oster/orgspy/report"
	"f0oster/orgspy/snapshot"
)

func TestHierarchyTable_ColumnsAndRows(t *testing.T) {
	records := []snapshot.HierarchyRecord{
		{
			DirectoryID: "d1", DirectoryName: "Corp",
			GroupID: "g1", GroupName: "Engineering",
			UserID: "u1", UserName: "alice@example.com", UserEmail: "alice@example.com",
			Notes: "site-admin", PlatformRoles: "org-admin",
		},
	}

	table := report.HierarchyTable(records)

	wantColumns := "directoryId,directoryName,groupId,groupName,userId,userName,userEmail,notes,platformRoles"
	if strings.Join(table.Columns, ",") != wantColumns {
		t.Errorf("columns = %v", table.Columns)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(table.Rows))
	}
	if table.Rows[0][0] != "d1" || table.Rows[0][8] != "org-admin" {
		t.Errorf("row = %v", table.Rows[0])
	}
}

func TestRoleMappingTable_Columns(t *testing.T) {
	table := report.RoleMappingTable([]hierarchy.RoleMappingRecord{
		{UserID: "u1", UserName: "alice@example.com", UserEmail: "alice@example.com",
			GroupID: "ORG-LEVEL", GroupName: "Organization-wide", RoleKey: "org-admin"},
	})

	wantColumns := "userId,userName,userEmail,groupId,groupName,roleKey"
	if strings.Join(table.Columns, ",") != wantColumns {
		t.Errorf("columns = %v", table.Columns)
	}
	if table.Rows[0][5] != "org-admin" {
		t.Errorf("row = %v", table.Rows[0])
	}
}

func TestTables_EmptyInputIsWellFormed(t *testing.T) {
	hier := report.HierarchyTable(nil)
	if len(hier.Columns) != 9 || len(hier.Rows) != 0 {
		t.Errorf("empty hierarchy table: %+v", hier)
	}

	roles := report.RoleMappingTable(nil)
	if len(roles.Columns) != 6 || len(roles.Rows) != 0 {
		t.Errorf("empty role table: %+v", roles)
	}

	var sb strings.Builder
	if err := hier.WriteCSV(&sb); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if strings.TrimSpace(sb.String()) != strings.Join(hier.Columns, ",") {
		t.Errorf("empty csv = %q", sb.String())
	}
}

func TestWriteCSV_QuotesEmbeddedCommas(t *testing.T) {
	table := report.HierarchyTable([]snapshot.HierarchyRecord{
		{DirectoryID: "d1", GroupID: "g1", UserID: "u1", Notes: "site-admin, viewer"},
	})

	var sb strings.Builder
	if err := table.WriteCSV(&sb); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if !strings.Contains(sb.String(), `"site-admin, viewer"`) {
		t.Errorf("joined role names not quoted: %q", sb.String())
	}
}

func TestWriteJSON_ColumnKeyedObjects(t *testing.T) {
	table := report.HierarchyTable([]snapshot.HierarchyRecord{
		{DirectoryID: "d1", GroupID: "g1", UserID: "u1", Notes: "site-admin, viewer"},
		{DirectoryID: "d1", GroupID: "g1", UserID: "u2"},
	})

	var sb strings.Builder
	if err := table.WriteJSON(&sb); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var rows []map[string]string
	if err := json.Unmarshal([]byte(sb.String()), &rows); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0]["userId"] != "u1" || rows[0]["notes"] != "site-admin, viewer" {
		t.Errorf("first row = %v", rows[0])
	}
	if len(rows[1]) != len(table.Columns) {
		t.Errorf("row keys = %d, want one per column (%d)", len(rows[1]), len(table.Columns))
	}
}

func TestWriteJSON_EmptyTableIsEmptyArray(t *testing.T) {
	var sb strings.Builder
	if err := report.RoleMappingTable(nil).WriteJSON(&sb); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if strings.TrimSpace(sb.String()) != "[]" {
		t.Errorf("empty table json = %q", sb.String())
	}
}

func TestSummarize(t *testing.T) {
	records := []snapshot.HierarchyRecord{
		{DirectoryID: "d1", GroupID: "g1", UserID: "u1"},
		{DirectoryID: "d1", GroupID: "g1", UserID: "u2"},
		{DirectoryID: "d1", GroupID: "g2", UserID: "u1"},
	}
	got := report.Summarize(records)
	want := report.Summary{Directories: 1, Groups: 2, Users: 2, Records: 3}
	if got != want {
		t.Errorf("Summarize = %+v, want %+v", got, want)
	}
}
