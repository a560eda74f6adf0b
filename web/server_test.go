package web_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"f0oster/orgspy/snapshot"
	"f0oster/orgspy/web"
)

func newTestServer(t *testing.T, records []snapshot.HierarchyRecord) *web.Server {
	t.Helper()
	store := snapshot.NewFileStore(filepath.Join(t.TempDir(), "hierarchy_data.json"))
	for _, record := range records {
		if err := store.Append(record); err != nil {
			t.Fatal(err)
		}
	}
	return web.NewServer(store, ":0")
}

func get(t *testing.T, s *web.Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHierarchyEndpoint(t *testing.T) {
	s := newTestServer(t, []snapshot.HierarchyRecord{
		{DirectoryID: "d1", GroupID: "g1", UserID: "u1", UserEmail: "alice@example.com",
			UserName: "alice@example.com", Notes: "viewer", PlatformRoles: "org-admin"},
	})

	rec := get(t, s, "/api/hierarchy")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var records []snapshot.HierarchyRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &records); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(records) != 1 || records[0].UserID != "u1" {
		t.Errorf("records = %+v", records)
	}
}

func TestRolesEndpoint_RebuildsFromSnapshot(t *testing.T) {
	s := newTestServer(t, []snapshot.HierarchyRecord{
		{DirectoryID: "d1", GroupID: "g1", GroupName: "Engineering", UserID: "u1",
			UserName: "alice@example.com", UserEmail: "alice@example.com",
			Notes: "site-admin, viewer", PlatformRoles: "org-admin"},
	})

	rec := get(t, s, "/api/roles")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var mappings []map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &mappings); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(mappings) != 3 {
		t.Fatalf("mappings = %d, want 3", len(mappings))
	}
	if mappings[2]["groupId"] != "ORG-LEVEL" || mappings[2]["roleKey"] != "org-admin" {
		t.Errorf("org-level row = %+v", mappings[2])
	}
}

func TestCSVEndpoints(t *testing.T) {
	s := newTestServer(t, []snapshot.HierarchyRecord{
		{DirectoryID: "d1", GroupID: "g1", UserID: "u1"},
	})

	rec := get(t, s, "/api/hierarchy.csv")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/csv" {
		t.Errorf("Content-Type = %q", got)
	}
	if !strings.HasPrefix(rec.Body.String(), "directoryId,") {
		t.Errorf("csv body = %q", rec.Body.String())
	}

	rec = get(t, s, "/api/roles.csv")
	if !strings.HasPrefix(rec.Body.String(), "userId,") {
		t.Errorf("roles csv body = %q", rec.Body.String())
	}
}

func TestEmptySnapshotServesEmptyTables(t *testing.T) {
	s := newTestServer(t, nil)

	rec := get(t, s, "/api/hierarchy")
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("empty hierarchy body = %q", rec.Body.String())
	}

	rec = get(t, s, "/api/summary")
	var summary map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary["records"] != 0 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestCorruptSnapshotIs500(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hierarchy_data.json")
	if err := os.WriteFile(path, []byte("{corrupt"), 0644); err != nil {
		t.Fatal(err)
	}
	s := web.NewServer(snapshot.NewFileStore(path), ":0")

	rec := get(t, s, "/api/hierarchy")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
