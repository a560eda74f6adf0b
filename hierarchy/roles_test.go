package hierarchy_test

import (
	"context"
	"testing"

	"f0oster/orgspy/hierarchy"
	"f0oster/orgspy/snapshot"
)

func TestRoleMappingsFromRecords(t *testing.T) {
	records := []snapshot.HierarchyRecord{
		{
			DirectoryID: "d1", GroupID: "g1", GroupName: "Engineering",
			UserID: "u1", UserName: "alice@example.com", UserEmail: "alice@example.com",
			Notes: "site-admin, viewer", PlatformRoles: "org-admin",
		},
		{
			DirectoryID: "d1", GroupID: "g2", GroupName: "Sales",
			UserID: "u2", UserName: "bob@example.com", UserEmail: "bob@example.com",
		},
	}

	mappings := hierarchy.RoleMappingsFromRecords(records)
	if len(mappings) != 3 {
		t.Fatalf("mappings = %d, want 3: %+v", len(mappings), mappings)
	}

	if mappings[0].RoleKey != "site-admin" || mappings[0].GroupID != "g1" {
		t.Errorf("first mapping = %+v", mappings[0])
	}
	if mappings[1].RoleKey != "viewer" {
		t.Errorf("second mapping = %+v", mappings[1])
	}
	if mappings[2].GroupID != hierarchy.OrgLevelGroupID || mappings[2].RoleKey != "org-admin" {
		t.Errorf("third mapping = %+v", mappings[2])
	}
}

func TestRoleMappingsFromRecords_MatchesLiveCrawl(t *testing.T) {
	srv := newFixtureServer(t)
	defer srv.Close()

	walker, _ := newFixtureWalker(t, srv)
	records, live, err := walker.Crawl(context.Background())
	if err != nil {
		t.Fatalf("Crawl: %v", err)
	}

	rebuilt := hierarchy.RoleMappingsFromRecords(records)
	if len(rebuilt) != len(live) {
		t.Fatalf("rebuilt %d mappings, live crawl emitted %d", len(rebuilt), len(live))
	}
	for i := range live {
		if rebuilt[i] != live[i] {
			t.Errorf("mapping %d differs:\nrebuilt %+v\nlive    %+v", i, rebuilt[i], live[i])
		}
	}
}
