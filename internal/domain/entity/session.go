package entity

import "strconv"

// Session is the identity persisted on the client after a successful login.
// Both fields are kept as strings, the same way they are stored.
type Session struct {
	UserID string `json:"userId" yaml:"userId"`
	Email  string `json:"userEmail" yaml:"userEmail"`
}

// NewSession builds the persisted form of a user.
func NewSession(u User) Session {
	return Session{UserID: strconv.FormatInt(u.ID, 10), Email: u.Email}
}

// Valid reports whether both values are present.
func (s Session) Valid() bool {
	return s.UserID != "" && s.Email != ""
}

// ID returns the numeric user id.
func (s Session) ID() (int64, error) {
	return strconv.ParseInt(s.UserID, 10, 64)
}
