package notification

import (
	"testing"
)

func TestNewNotificationManager(t *testing.T) {
	nm := NewNotificationManager()
	if nm == nil {
		t.Error("NewNotificationManager returned nil")
	}
	if nm.notifiers == nil {
		t.Error("notifiers map not initialized")
	}
	if nm.notificationRegistry == nil {
		t.Error("notificationRegistry map not initialized")
	}
}

func TestRegisterNotifier(t *testing.T) {
	nm := NewNotificationManager()
	mockNotifier := &MockNotifier{}

	nm.RegisterNotifier(EmailSystem, mockNotifier)
	if n, exists := nm.notifiers[EmailSystem]; !exists {
		t.Error("Notifier not registered")
	} else if n != mockNotifier {
		t.Error("Wrong notifier registered")
	}

	// Registering again overwrites
	newMockNotifier := &MockNotifier{}
	nm.RegisterNotifier(EmailSystem, newMockNotifier)
	if n := nm.notifiers[EmailSystem]; n != newMockNotifier {
		t.Error("Notifier not overwritten")
	}
}

func TestRegisterNotification(t *testing.T) {
	nm := NewNotificationManager()

	tests := []struct {
		name        string
		notifType   NoticeType
		system      NotificationSystem
		template    NoticeTemplate
		shouldError bool
	}{
		{
			name:        "Valid registration with both Text and Html",
			notifType:   ExampleNotice,
			system:      EmailSystem,
			template:    NoticeTemplate{Subject: "Example Email", Text: "This is an example email", Html: "<p>This is an example email</p>"},
			shouldError: false,
		},
		{
			name:        "Valid registration with Text only",
			notifType:   ExampleNotice,
			system:      EmailSystem,
			template:    NoticeTemplate{Subject: "Example Email", Text: "This is an example email"},
			shouldError: false,
		},
		{
			name:        "Empty notification type",
			notifType:   "",
			system:      EmailSystem,
			template:    NoticeTemplate{Subject: "Example Email", Text: "This is an example email"},
			shouldError: true,
		},
		{
			name:        "Empty system",
			notifType:   ExampleNotice,
			system:      "",
			template:    NoticeTemplate{Subject: "Example Email", Text: "This is an example email"},
			shouldError: true,
		},
		{
			name:        "Empty subject",
			notifType:   ExampleNotice,
			system:      EmailSystem,
			template:    NoticeTemplate{Subject: "", Text: "This is an example email"},
			shouldError: true,
		},
		{
			name:        "No content",
			notifType:   ExampleNotice,
			system:      EmailSystem,
			template:    NoticeTemplate{Subject: "Example Email"},
			shouldError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := nm.RegisterNotification(tt.notifType, tt.system, tt.template)
			if tt.shouldError && err == nil {
				t.Error("Expected error but got none")
			}
			if !tt.shouldError && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if !tt.shouldError {
				if template, exists := nm.notificationRegistry[tt.notifType][tt.system]; !exists {
					t.Error("Template not registered")
				} else if template.Subject != tt.template.Subject {
					t.Errorf("Wrong subject registered. Got %s, want %s", template.Subject, tt.template.Subject)
				}
			}
		})
	}
}

func TestSend(t *testing.T) {
	nm := NewNotificationManager()
	mockEmailNotifier := &MockNotifier{}
	nm.RegisterNotifier(EmailSystem, mockEmailNotifier)

	err := nm.RegisterNotification(VerificationCodeNotice, EmailSystem, NoticeTemplate{
		Subject: "Password Recovery",
		Html:    "<p>Code: {{.Code}}</p>",
	})
	if err != nil {
		t.Fatalf("Failed to register notification: %v", err)
	}

	testData := NotificationData{
		To:   "user@example.com",
		Data: map[string]string{"Code": "482913"},
	}

	if err := nm.Send(VerificationCodeNotice, testData); err != nil {
		t.Errorf("Failed to send notification: %v", err)
	}

	if len(mockEmailNotifier.SentNotifications) != 1 {
		t.Error("Email notification not sent")
	} else if mockEmailNotifier.SentNotifications[0].To != testData.To {
		t.Error("Email notification data mismatch")
	}
}

func TestSendErrors(t *testing.T) {
	nm := NewNotificationManager()

	// Unregistered notification type
	if err := nm.Send("unregistered", NotificationData{}); err == nil {
		t.Error("Expected error for unregistered notification type")
	}

	// Template registered but no notifier for its system
	err := nm.RegisterNotification(ExampleNotice, EmailSystem, NoticeTemplate{Subject: "Example", Text: "body"})
	if err != nil {
		t.Fatalf("Failed to register notification: %v", err)
	}
	if err := nm.Send(ExampleNotice, NotificationData{}); err == nil {
		t.Error("Expected error for missing notifier")
	}
}
