package entity

// EmailRequest asks the backend to e-mail the monthly report of a user.
type EmailRequest struct {
	Email  string `json:"email"`
	UserID int64  `json:"userId"`
	Month  int    `json:"month"`
	Year   int    `json:"year"`
}
