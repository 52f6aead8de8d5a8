package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	minNameLength     = 3
	minPasswordLength = 6
	maxPasswordLength = 30
)

type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func (req *RegisterRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FirstName, validation.Required, validation.RuneLength(minNameLength, 0)),
		validation.Field(&req.LastName, validation.Required, validation.RuneLength(minNameLength, 0)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required, validation.Length(minPasswordLength, maxPasswordLength)),
	)
}

// CredentialsRequest is used by login and by the verification mail resend.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *CredentialsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required, validation.Length(minPasswordLength, maxPasswordLength)),
	)
}
