package identity

// Identity is the authenticated caller carried by a validated access token.
type Identity struct {
	UserID   string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Username string `json:"username"`
}
