package orgapi

import "encoding/json"

// Directory is a tenant-level identity partition containing groups and users.
type Directory struct {
	DirectoryID string `json:"directoryId"`
	Name        string `json:"name"`
}

// Group is a named collection of users within a directory.
type Group struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// User as returned by the directory user listing. Group membership listings
// return the same shape with fewer fields populated.
type User struct {
	AccountID     string   `json:"accountId"`
	Email         string   `json:"email"`
	Name          string   `json:"name"`
	Nickname      string   `json:"nickname"`
	PlatformRoles []string `json:"platformRoles"`
}

// RoleAssignment is a named permission scope bound to a group.
type RoleAssignment struct {
	RoleKey string `json:"roleKey"`
}

// page is the collection envelope every org API endpoint wraps its
// results in: a data array plus an optional continuation link.
type page struct {
	Data  []json.RawMessage `json:"data"`
	Links pageLinks         `json:"links"`
}

type pageLinks struct {
	Next string `json:"next"`
}
