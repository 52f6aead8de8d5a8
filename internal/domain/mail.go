package domain

// VerificationMail carries a bearer token to a freshly registered user.
type VerificationMail struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Token     string `json:"token"`
}

func NewVerificationMail(user User, token string) VerificationMail {
	return VerificationMail{
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Token:     token,
	}
}

func (m VerificationMail) FullName() string {
	return User{FirstName: m.FirstName, LastName: m.LastName}.FullName()
}
