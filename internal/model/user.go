// Package model contains the normalized marketplace entities returned to
// clients. The BaaS owns persistence; these are transient copies.
package model

// Role ids as stored by the BaaS.
const (
	RoleClient int64 = 1
	RoleAdmin  int64 = 2
)

const (
	RoleNameClient = "cliente"
	RoleNameAdmin  = "admin"
)

// RoleName maps a role id to its name. Anything but admin is a client.
func RoleName(id int64) string {
	if id == RoleAdmin {
		return RoleNameAdmin
	}
	return RoleNameClient
}

// RoleID maps a role name to its id.
func RoleID(name string) int64 {
	if name == RoleNameAdmin {
		return RoleAdmin
	}
	return RoleClient
}

// User is a marketplace account. State false means the account is blocked.
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"nombre"`
	LastName  string `json:"apellidos"`
	Email     string `json:"email"`
	RoleID    int64  `json:"role_id"`
	Role      string `json:"rol"`
	State     bool   `json:"state"`
	CreatedAt string `json:"created_at,omitempty"`

	// HasPassword reports whether the BaaS stored a password hash.
	HasPassword bool `json:"-"`
}

func (u User) IsAdmin() bool { return u.RoleID == RoleAdmin }

func (u User) Blocked() bool { return !u.State }

// Role is an entry of the role catalogue.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"nombre"`
}

// DefaultRoles is used when the BaaS role list is unavailable.
func DefaultRoles() []Role {
	return []Role{{ID: RoleClient, Name: RoleNameClient}, {ID: RoleAdmin, Name: RoleNameAdmin}}
}
