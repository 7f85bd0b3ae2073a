package entity

// User is the identity returned by the login endpoints.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}
