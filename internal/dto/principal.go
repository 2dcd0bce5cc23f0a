package dto

// Principal is the authenticated identity supplied by the upstream session
// provider on every request.
type Principal struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}
