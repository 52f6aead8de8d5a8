package mq

// Queue names and message definitions.

// durable queue from the auth workflow to the mail consumer
// deliver message to send a verification token to a user
const (
	DefaultMailQueue = "mail.verification.send"
)

type VerificationMailMessage struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Token     string `json:"token"`
}
