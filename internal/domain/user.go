package domain

// User is a session-local identity minted by the mock auth flow.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
