// Package notice wires the notification templates this service sends.
package notice

import (
	"github.com/tendant/backoffice-idm/pkg/notification"
)

// NewNotificationManager creates a notification manager with the email
// notifier and the templates used by the authentication flows.
func NewNotificationManager(smtpConfig notification.SMTPConfig) (*notification.NotificationManager, error) {
	return notification.NewNotificationManagerWithOptions(
		notification.WithSMTP(smtpConfig),
		notification.WithVerificationCodeTemplate(),
		notification.WithAccountCredentialsTemplate(),
	)
}
