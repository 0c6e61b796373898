package model

// User is the account record surfaced to the rest of the application.
// ID, Email and Role must match the payload of the token that authorized it.
type User struct {
	ID        int64  `json:"id" validate:"required"`
	Email     string `json:"email" validate:"required,email,max=255"`
	FirstName string `json:"firstName" validate:"max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
	Role      Role   `json:"role" validate:"required,max=50"`
}

// DisplayName joins the name parts, falling back to the email address
func (u User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	}
	return u.Email
}
