package notification

import (
	"embed"
	"log/slog"
)

//go:embed templates/*
var templateFiles embed.FS

func loadTemplate(filename string) string {
	content, err := templateFiles.ReadFile(filename)
	if err != nil {
		slog.Error("Error reading template file", "err", err, "filename", filename)
		return ""
	}
	return string(content)
}

// NotificationManagerOption is a function that configures a NotificationManager
type NotificationManagerOption func(*NotificationManager) error

// WithSMTP adds an email notifier with the provided SMTP configuration
func WithSMTP(config SMTPConfig) NotificationManagerOption {
	return func(nm *NotificationManager) error {
		emailNotifier, err := NewEmailNotifier(config)
		if err != nil {
			return err
		}
		nm.RegisterNotifier(EmailSystem, emailNotifier)
		return nil
	}
}

// WithVerificationCodeTemplate registers the password-recovery code email template
func WithVerificationCodeTemplate() NotificationManagerOption {
	return func(nm *NotificationManager) error {
		return nm.RegisterNotification(VerificationCodeNotice, EmailSystem, NoticeTemplate{
			Subject: "Password Recovery",
			Html:    loadTemplate("templates/email/verification_code.html"),
		})
	}
}

// WithAccountCredentialsTemplate registers the new-account credentials email template
func WithAccountCredentialsTemplate() NotificationManagerOption {
	return func(nm *NotificationManager) error {
		return nm.RegisterNotification(AccountCredentialsNotice, EmailSystem, NoticeTemplate{
			Subject: "Your Account Credentials",
			Html:    loadTemplate("templates/email/account_credentials.html"),
		})
	}
}

// NewNotificationManagerWithOptions builds a manager from the given options
func NewNotificationManagerWithOptions(opts ...NotificationManagerOption) (*NotificationManager, error) {
	nm := NewNotificationManager()
	for _, opt := range opts {
		if err := opt(nm); err != nil {
			return nil, err
		}
	}
	return nm, nil
}
