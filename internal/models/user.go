package models

// Role is a user's staff privilege level.
type Role string

// Roles, ordered from least to most privileged.
const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// rank maps roles onto a comparable privilege scale.
var rank = map[Role]int{
	RoleUser:      0,
	RoleModerator: 1,
	RoleAdmin:     2,
}

// AtLeast reports whether r carries at least the privilege of other.
func (r Role) AtLeast(other Role) bool {
	return rank[r] >= rank[other]
}

// AccountStatus is the standing of a user's account.
type AccountStatus string

// Account statuses.
const (
	AccountActive    AccountStatus = "active"
	AccountSuspended AccountStatus = "suspended"
	AccountBanned    AccountStatus = "banned"
)

// User represents the user model in the database
type User struct {
	Base
	Name          string        `gorm:"not null" json:"name"`
	Email         string        `gorm:"uniqueIndex;not null" json:"email"`
	Password      string        `gorm:"not null" json:"-"`
	Role          Role          `gorm:"type:varchar(16);default:'user';index" json:"role"`
	AccountStatus AccountStatus `gorm:"type:varchar(16);default:'active'" json:"account_status"`
}
