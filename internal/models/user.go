package models

// User is a stored account record. Salt, hash and session token live in
// the users file only; clients always receive a PublicUser instead.
type User struct {
	ID           int            `json:"id"`
	Username     string         `json:"username"`
	Salt         string         `json:"salt"`
	PasswordHash string         `json:"passwordHash"`
	SessionToken string         `json:"sessionToken,omitempty"`
	Preferences  map[string]any `json:"preferences,omitempty"`
}

// PublicUser is the client-facing view of an account.
type PublicUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username}
}
