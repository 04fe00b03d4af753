package notice

import (
	"github.com/tendant/backoffice-idm/pkg/notification"
)

// AuthNotifier sends the authentication flows' outbound mail through
// the notification manager.
type AuthNotifier struct {
	manager *notification.NotificationManager
}

func NewAuthNotifier(manager *notification.NotificationManager) *AuthNotifier {
	return &AuthNotifier{manager: manager}
}

// SendVerificationCode emails a password-recovery code.
func (n *AuthNotifier) SendVerificationCode(email, code string) error {
	return n.manager.Send(notification.VerificationCodeNotice, notification.NotificationData{
		To:   email,
		Data: map[string]string{"Code": code},
	})
}

// SendCredentials emails the generated password of a new account.
func (n *AuthNotifier) SendCredentials(email, generatedPassword string) error {
	return n.manager.Send(notification.AccountCredentialsNotice, notification.NotificationData{
		To:   email,
		Data: map[string]string{"Password": generatedPassword},
	})
}
