package mail

import (
	"html"

	"github.com/vietanh2810/ticket-order-api/internal/domain"
)

const verificationSubject = "Verify User"

func verificationBody(m domain.VerificationMail) string {
	return "Hi, " + html.EscapeString(m.FullName()) +
		"<br>Your Verification Token:<br>" + m.Token
}
