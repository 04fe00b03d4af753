package notification

import (
	"testing"
)

func TestNewEmailNotifier(t *testing.T) {
	tests := []struct {
		name   string
		config SMTPConfig
	}{
		{
			name:   "plain without auth",
			config: SMTPConfig{Host: "localhost", Port: 1025, From: "noreply@example.com"},
		},
		{
			name:   "tls with auth",
			config: SMTPConfig{Host: "smtp.example.com", Port: 587, TLS: true, Username: "u", Password: "p", From: "noreply@example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier, err := NewEmailNotifier(tt.config)
			if err != nil {
				t.Fatalf("NewEmailNotifier failed: %v", err)
			}
			if notifier.client == nil {
				t.Error("mail client not initialized")
			}
		})
	}
}

func TestResolveContent(t *testing.T) {
	tmpl := NoticeTemplate{
		Subject: "Password Recovery",
		Html:    "<p>Code: {{.Code}}</p>",
	}

	subject, text, html, err := resolveContent(NotificationData{Data: map[string]string{"Code": "42"}}, tmpl)
	if err != nil {
		t.Fatalf("resolveContent failed: %v", err)
	}
	if subject != "Password Recovery" {
		t.Errorf("got subject %q, want template subject", subject)
	}
	if text != "" {
		t.Errorf("got text body %q, want empty", text)
	}
	if html != "<p>Code: 42</p>" {
		t.Errorf("got html body %q", html)
	}
}

func TestResolveContentOverrides(t *testing.T) {
	// Subject override wins over the template subject
	subject, _, _, err := resolveContent(
		NotificationData{Subject: "Urgent: Password Recovery"},
		NoticeTemplate{Subject: "Password Recovery", Text: "body"},
	)
	if err != nil {
		t.Fatalf("resolveContent failed: %v", err)
	}
	if subject != "Urgent: Password Recovery" {
		t.Errorf("got subject %q, want override", subject)
	}

	// Pre-rendered body fills in when the template has no content
	_, text, html, err := resolveContent(
		NotificationData{Body: "pre-rendered"},
		NoticeTemplate{Subject: "S"},
	)
	if err != nil {
		t.Fatalf("resolveContent failed: %v", err)
	}
	if text != "pre-rendered" {
		t.Errorf("got text body %q, want pre-rendered fallback", text)
	}
	if html != "" {
		t.Errorf("got html body %q, want empty", html)
	}

	// Template content is not displaced by Body
	_, text, _, err = resolveContent(
		NotificationData{Body: "pre-rendered"},
		NoticeTemplate{Subject: "S", Text: "template body"},
	)
	if err != nil {
		t.Fatalf("resolveContent failed: %v", err)
	}
	if text != "template body" {
		t.Errorf("got text body %q, want template body", text)
	}
}

func TestResolveContentBadTemplate(t *testing.T) {
	_, _, _, err := resolveContent(
		NotificationData{},
		NoticeTemplate{Subject: "S", Html: "{{.Code"},
	)
	if err == nil {
		t.Error("expected error for malformed template")
	}
}
