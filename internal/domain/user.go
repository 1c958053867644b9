package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrDuplicateEmail       = errors.New("email is already registered")
	ErrDomainNotAllowed     = errors.New("email domain is not allowed for this role")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrRoleChangeNotAllowed = errors.New("only a manager can change role")
	ErrNothingToImport      = errors.New("no new users to import")
	ErrValidation           = errors.New("validation failed")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "User"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}

// ParseRole matches s against the known roles ignoring case.
func ParseRole(s string) (Role, bool) {
	for _, r := range []Role{RoleAdmin, RoleManager, RoleUser} {
		if strings.EqualFold(s, string(r)) {
			return r, true
		}
	}
	return "", false
}

// RoleForSignupOrder returns the role granted to a new account given how many
// confirmed accounts already exist.
func RoleForSignupOrder(confirmed int64) Role {
	switch confirmed {
	case 0:
		return RoleAdmin
	case 1:
		return RoleManager
	default:
		return RoleUser
	}
}

// RequiresOrgDomain reports whether accounts with this role must use the
// organization's email domain.
func (r Role) RequiresOrgDomain() bool {
	return r == RoleAdmin || r == RoleManager
}

type User struct {
	ID                  uint
	FirstName           string
	LastName            string
	Email               string
	PasswordHash        string
	ConfirmPasswordHash string
	Role                Role
	JoinDate            time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// HasPassword is false for accounts imported without credentials.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// NormalizeEmail lower-cases and trims an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// EmailDomain returns the part after the last "@", or "" when there is none.
func EmailDomain(email string) string {
	i := strings.LastIndex(email, "@")
	if i < 0 || i == len(email)-1 {
		return ""
	}
	return strings.ToLower(email[i+1:])
}

// DateOnly truncates t to midnight UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
