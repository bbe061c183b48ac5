package services

import (
	"context"
	"sync"
	"testing"

	"server/config"
	. "server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSender struct {
	mu       sync.Mutex
	messages []EmailMessage
}

func (s *captureSender) Send(ctx context.Context, msg EmailMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
	return nil
}

func (s *captureSender) sent() []EmailMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]EmailMessage(nil), s.messages...)
}

func newTestNotifier(cfg config.Config) (*NotificationService, *captureSender) {
	notifier := NewNotification(cfg)
	sender := &captureSender{}
	notifier.sender = sender
	return notifier, sender
}

func TestNotificationService_DispatchParentLead(t *testing.T) {
	notifier, sender := newTestNotifier(config.Config{
		Environment: "development",
		AdminEmail:  "admin@example.com",
	})

	phone := "5305550101"
	notifier.DispatchParentLead(&ParentLead{
		FullName:       "Jane Doe",
		Email:          "jane@example.com",
		Phone:          &phone,
		Location:       "Truckee",
		DueOrAge:       "6 months",
		StartTimeframe: "ASAP",
		IsDuplicate:    true,
	})
	notifier.Wait()

	messages := sender.sent()
	require.Len(t, messages, 1, "no user confirmation outside production")

	msg := messages[0]
	assert.Equal(t, "admin@example.com", msg.To)
	assert.Equal(t, "[TNN] New Parent Lead - Jane Doe", msg.Subject)
	assert.NotEmpty(t, msg.ID)
	assert.Contains(t, msg.Text, "Phone: 5305550101")
	assert.Contains(t, msg.Text, "DUPLICATE EMAIL DETECTED (within 30 days)")
	assert.Contains(t, msg.HTML, "<p>")
}

func TestNotificationService_ProductionSendsConfirmation(t *testing.T) {
	notifier, sender := newTestNotifier(config.Config{
		Environment: "production",
		AdminEmail:  "admin@example.com",
	})

	notifier.DispatchCaregiverApplication(&CaregiverApplication{
		FullName:        "Mary O'Brien",
		Email:           "mary@example.com",
		Phone:           "5305550101",
		BaseLocation:    "South Lake Tahoe",
		WillingRegions:  "South Lake Tahoe",
		ExperienceYears: "2-5",
		Certifications:  "cpr",
	})
	notifier.Wait()

	messages := sender.sent()
	require.Len(t, messages, 2)

	recipients := []string{messages[0].To, messages[1].To}
	assert.Contains(t, recipients, "admin@example.com")
	assert.Contains(t, recipients, "mary@example.com")

	for _, msg := range messages {
		if msg.To == "mary@example.com" {
			assert.Contains(t, msg.Text, "Hi Mary,")
		}
	}
}

func TestNotificationService_BccArchive(t *testing.T) {
	notifier, sender := newTestNotifier(config.Config{
		Environment:     "development",
		AdminEmail:      "admin@example.com",
		BccArchiveEmail: "archive@example.com",
	})

	notifier.DispatchParentLead(&ParentLead{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Location: "Truckee",
	})
	notifier.Wait()

	messages := sender.sent()
	require.Len(t, messages, 2)
}

func TestNotificationService_NoAdminEmailSkips(t *testing.T) {
	notifier, sender := newTestNotifier(config.Config{Environment: "development"})

	notifier.DispatchParentLead(&ParentLead{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Location: "Truckee",
	})
	notifier.Wait()

	assert.Empty(t, sender.sent())
}

func TestTextToHTML(t *testing.T) {
	html := textToHTML("Name: A & B\n\nNotes: <script>")
	assert.Equal(t, "<p>Name: A &amp; B</p><p>Notes: &lt;script&gt;</p>", html)
}
