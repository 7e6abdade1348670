package entity

import "strings"

// User is a minimal projection of an account, enough for recipient and
// reviewer resolution.
type User struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Email      string `json:"email"`
}

// FullName returns the display name, falling back to the username when no
// name parts are set.
func (u *User) FullName() string {
	name := strings.TrimSpace(u.GivenName + " " + u.FamilyName)
	if name == "" {
		return u.Username
	}
	return name
}
