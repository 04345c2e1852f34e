package domain

// User is an operator identity supplied by the auth layer. Only the email is
// stamped onto records; the core never holds ambient session state.
type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}
