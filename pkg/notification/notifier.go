package notification

// NotificationSystem represents a delivery channel.
type NotificationSystem string

// NoticeType represents a kind of notification (e.g. "verification_code").
type NoticeType string

const (
	EmailSystem NotificationSystem = "email"

	// VerificationCodeNotice carries a password-recovery code.
	VerificationCodeNotice NoticeType = "verification_code"
	// AccountCredentialsNotice carries the generated password for a new account.
	AccountCredentialsNotice NoticeType = "account_credentials"
	// ExampleNotice exists for tests.
	ExampleNotice NoticeType = "example"
)

// NoticeTemplate holds the subject and body templates for a notice.
// Text and Html are html/template sources rendered with NotificationData.Data.
type NoticeTemplate struct {
	Subject string
	Text    string
	Html    string
}

// NotificationData is the payload for a single dispatch. Subject
// overrides the template subject when set; Body is used as the text body
// when the template has no content of its own.
type NotificationData struct {
	To      string            // Recipient identifier (e.g. email address)
	Subject string            // Optional subject override
	Body    string            // Optional pre-rendered content
	Data    map[string]string // Template data (e.g. {"Code": "482913"})
}

// Notifier delivers a notice over one system.
type Notifier interface {
	Send(noticeType NoticeType, notification NotificationData, template NoticeTemplate) error
}
