package hierarchy

// Sentinel group identity for platform-level roles, which attach directly to
// a user rather than to any group.
const (
	OrgLevelGroupID   = "ORG-LEVEL"
	OrgLevelGroupName = "Organization-wide"
)

// RoleMappingRecord is one row of the user-role view: one per (user, group,
// role) triple, plus one per (user, platform role) with the ORG-LEVEL
// sentinel. Held in memory only; the snapshot persists hierarchy records.
type RoleMappingRecord struct {
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
	GroupID   string `json:"groupId"`
	GroupName string `json:"groupName"`
	RoleKey   string `json:"roleKey"`
}
