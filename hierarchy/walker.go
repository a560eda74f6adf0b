package hierarchy

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"f0oster/orgspy/orgapi"
	"f0oster/orgspy/snapshot"
)

// Walker drives the four-level crawl: directories, then per-directory groups
// and users, then per-group role assignments and membership. Every emitted
// hierarchy record is made durable through the snapshot store before the walk
// moves to the next user, which is what makes interruption-safe resume work.
type Walker struct {
	client *orgapi.Client
	store  snapshot.Store

	// SkipVisited suppresses re-emission of (directory, group, user) triples
	// already present in the loaded snapshot or emitted earlier in this run.
	// Disabling it restores the plain append-only re-walk, which duplicates
	// records on resume.
	SkipVisited bool
}

func NewWalker(client *orgapi.Client, store snapshot.Store) *Walker {
	return &Walker{
		client:      client,
		store:       store,
		SkipVisited: true,
	}
}

// Crawl walks the whole hierarchy once and returns the accumulated hierarchy
// records (loaded snapshot state included) and the role mapping rows for the
// same population: mappings for loaded records are rebuilt from the snapshot
// so both views agree after a resume. Per-node fetch failures degrade to
// empty collections and the walk carries on; only an unreadable snapshot, a
// failed first directory request, or a failed checkpoint write abort the
// crawl.
func (w *Walker) Crawl(ctx context.Context) ([]snapshot.HierarchyRecord, []RoleMappingRecord, error) {
	records, err := w.store.Load()
	if err != nil {
		return nil, nil, err
	}
	if len(records) > 0 {
		slog.Info("loaded existing hierarchy snapshot, continuing from last state", "records", len(records))
	}

	visited := make(map[snapshot.Key]bool, len(records))
	if w.SkipVisited {
		for _, record := range records {
			visited[record.Key()] = true
		}
	}

	// role rows for already-persisted records, so a resumed crawl's role
	// view covers the same users as its record view
	roleMappings := RoleMappingsFromRecords(records)

	directories, ferr := w.client.Directories(ctx)
	if ferr != nil && len(directories) == 0 {
		// nothing to walk: bad credential, bad org id, or the API is down
		return nil, nil, fmt.Errorf("fetch directories: %w", ferr)
	}
	if ferr != nil {
		slog.Warn("directory listing incomplete", "err", ferr)
	}

	for _, dir := range directories {
		dirID := orgapi.ExtractGUID(dir.DirectoryID)
		if dirID == "" {
			continue
		}
		dirName := dir.Name
		if dirName == "" {
			dirName = "Unknown Directory"
		}
		slog.Info("crawling directory", "directory", dirName, "id", dirID)

		groups, ferr := w.client.Groups(ctx, dirID)
		if ferr != nil {
			slog.Warn("group listing incomplete", "directory", dirID, "err", ferr)
		}

		users, ferr := w.client.Users(ctx, dirID)
		if ferr != nil {
			slog.Warn("user listing incomplete", "directory", dirID, "err", ferr)
		}

		// directory-level detail, keyed by normalized account id, for
		// merging over the thinner group membership stubs
		userByID := make(map[string]orgapi.User, len(users))
		for _, u := range users {
			if id := orgapi.ExtractGUID(u.AccountID); id != "" {
				userByID[id] = u
			}
		}

		for _, group := range groups {
			grpID := orgapi.ExtractGUID(group.ID)
			if grpID == "" {
				continue
			}
			grpName := group.Name
			if grpName == "" {
				grpName = "Unknown Group"
			}

			roles, ferr := w.client.GroupRoleAssignments(ctx, dirID, grpID)
			if ferr != nil {
				slog.Warn("role assignment listing incomplete", "group", grpID, "err", ferr)
			}
			roleNames := make([]string, 0, len(roles))
			for _, role := range roles {
				key := role.RoleKey
				if key == "" {
					key = "unknown-role"
				}
				roleNames = append(roleNames, key)
			}

			members, ferr := w.client.GroupUsers(ctx, dirID, grpID)
			if ferr != nil {
				slog.Warn("group membership listing incomplete", "group", grpID, "err", ferr)
			}

			for _, stub := range members {
				userID := orgapi.ExtractGUID(stub.AccountID)
				if userID == "" {
					continue
				}

				key := snapshot.Key{DirectoryID: dirID, GroupID: grpID, UserID: userID}
				if w.SkipVisited && visited[key] {
					continue
				}

				full, ok := userByID[userID]
				if !ok {
					full = stub
				}

				userEmail := full.Email
				if userEmail == "" {
					userEmail = userID
				}
				userName := displayName(full, userID)
				platformRoles := strings.Join(full.PlatformRoles, ", ")

				record := snapshot.HierarchyRecord{
					DirectoryID:   dirID,
					DirectoryName: dirName,
					GroupID:       grpID,
					GroupName:     grpName,
					UserID:        userID,
					UserName:      userName,
					UserEmail:     userEmail,
					Notes:         strings.Join(roleNames, ", "),
					PlatformRoles: platformRoles,
				}

				records = append(records, record)
				if err := w.store.Append(record); err != nil {
					return nil, nil, fmt.Errorf("persist record for user %s: %w", userID, err)
				}
				visited[key] = true

				// every role assigned to the group applies to every member
				for _, roleName := range roleNames {
					roleMappings = append(roleMappings, RoleMappingRecord{
						UserID:    userID,
						UserName:  userName,
						UserEmail: userEmail,
						GroupID:   grpID,
						GroupName: grpName,
						RoleKey:   roleName,
					})
				}

				// platform roles attach to the user, independent of group
				for _, platformRole := range full.PlatformRoles {
					roleMappings = append(roleMappings, RoleMappingRecord{
						UserID:    userID,
						UserName:  userName,
						UserEmail: userEmail,
						GroupID:   OrgLevelGroupID,
						GroupName: OrgLevelGroupName,
						RoleKey:   platformRole,
					})
				}
			}
		}
	}

	return records, roleMappings, nil
}

// displayName resolves the fallback chain for a user's display name: email,
// then name, then nickname, then the normalized account id itself.
func displayName(u orgapi.User, userID string) string {
	switch {
	case u.Email != "":
		return u.Email
	case u.Name != "":
		return u.Name
	case u.Nickname != "":
		return u.Nickname
	default:
		return userID
	}
}
