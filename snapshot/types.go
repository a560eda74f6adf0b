package snapshot

// HierarchyRecord is the unit of crawl progress: one row per (directory,
// group, user) combination visited, persisted as soon as it is emitted so an
// interrupted crawl can resume from the checkpoint. Field names match the
// checkpoint files written by earlier revisions of the crawler, so old
// snapshots keep loading.
type HierarchyRecord struct {
	DirectoryID   string `json:"directoryId"`
	DirectoryName string `json:"directoryName"`
	GroupID       string `json:"groupId"`
	GroupName     string `json:"groupName"`
	UserID        string `json:"userId"`
	UserName      string `json:"userName"`
	UserEmail     string `json:"userEmail"`
	Notes         string `json:"notes"`
	PlatformRoles string `json:"platformRoles"`
}

// Key identifies a record within one crawl. A completed crawl emits at most
// one record per key.
type Key struct {
	DirectoryID string
	GroupID     string
	UserID      string
}

func (r HierarchyRecord) Key() Key {
	return Key{DirectoryID: r.DirectoryID, GroupID: r.GroupID, UserID: r.UserID}
}
