package domain

// User is the identity resolved by the external identity provider for the current request.
type User struct {
	ID    string
	Email string
	Name  string
}

func (u User) IsAuthenticated() bool {
	return u.ID != ""
}
