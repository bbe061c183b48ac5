package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"server/config"
	"server/internal/logger"
	. "server/internal/models"

	"github.com/google/uuid"
	ses "github.com/sourcegraph/go-ses"
)

const NOTIFY_TIMEOUT = 10 * time.Second

type EmailMessage struct {
	ID      string
	To      string
	Subject string
	Text    string
	HTML    string
}

// EmailSender is the outbound transport. SES when credentials are
// configured, console logging otherwise.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// NotificationService sends best-effort email after a durable insert. Every
// dispatch runs on its own goroutine with a bounded timeout; failures are
// logged and never surfaced to the submitter.
type NotificationService struct {
	config config.Config
	sender EmailSender
	log    logger.Logger
	wg     sync.WaitGroup
}

func NewNotification(config config.Config) *NotificationService {
	log := logger.New("NotificationService")

	var sender EmailSender
	if config.SESAccessKey != "" && config.SESSecretKey != "" {
		sender = &sesSender{
			config: ses.Config{
				Endpoint:        config.SESEndpoint,
				AccessKeyID:     config.SESAccessKey,
				SecretAccessKey: config.SESSecretKey,
			},
			from: config.FromEmail,
		}
		log.Info("Email notifications enabled", "provider", "ses")
	} else {
		sender = &consoleSender{log: logger.New("consoleSender")}
		if config.IsProduction() {
			log.Warn("Email service not configured, using console output")
		}
	}

	return &NotificationService{
		config: config,
		sender: sender,
		log:    log,
	}
}

// DispatchParentLead hands the notification off to the background. The
// caller's request path never waits on mail transport.
func (s *NotificationService) DispatchParentLead(lead *ParentLead) {
	subject := fmt.Sprintf("[TNN] New Parent Lead - %s", lead.FullName)
	s.dispatch(subject, formatParentAdminText(lead))

	if s.config.IsProduction() && lead.Email != "" {
		s.dispatchTo(lead.Email,
			"Thanks — You're on the Tahoe Night Nurse Priority List",
			formatParentConfirmationText(lead))
	}
}

func (s *NotificationService) DispatchCaregiverApplication(application *CaregiverApplication) {
	subject := fmt.Sprintf("[TNN] New Caregiver Application - %s", application.FullName)
	s.dispatch(subject, formatCaregiverAdminText(application))

	if s.config.IsProduction() && application.Email != "" {
		s.dispatchTo(application.Email,
			"Thanks for Your Caregiver Application — Tahoe Night Nurse",
			formatCaregiverConfirmationText(application))
	}
}

// Wait blocks until in-flight dispatches finish; used on shutdown.
func (s *NotificationService) Wait() {
	s.wg.Wait()
}

func (s *NotificationService) dispatch(subject, text string) {
	if s.config.AdminEmail == "" {
		s.log.Function("dispatch").Warn("no admin email configured, skipping notification",
			"subject", subject)
		return
	}
	s.dispatchTo(s.config.AdminEmail, subject, text)

	if s.config.BccArchiveEmail != "" {
		s.dispatchTo(s.config.BccArchiveEmail, subject, text)
	}
}

func (s *NotificationService) dispatchTo(to, subject, text string) {
	log := s.log.Function("dispatchTo")

	msg := EmailMessage{
		ID:      uuid.New().String(),
		To:      to,
		Subject: subject,
		Text:    text,
		HTML:    textToHTML(text),
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), NOTIFY_TIMEOUT)
		defer cancel()

		if err := s.sender.Send(ctx, msg); err != nil {
			log.Er("failed to send notification email", err,
				"messageID", msg.ID, "to", msg.To, "subject", msg.Subject)
			return
		}
		log.Info("notification email sent", "messageID", msg.ID, "subject", msg.Subject)
	}()
}

type sesSender struct {
	config ses.Config
	from   string
}

func (s *sesSender) Send(ctx context.Context, msg EmailMessage) error {
	// go-ses has no context support; run the call in a goroutine so the
	// dispatch timeout still bounds how long we wait on it.
	done := make(chan error, 1)
	go func() {
		_, err := s.config.SendEmailHTML(s.from, msg.To, msg.Subject, msg.Text, msg.HTML)
		done <- err
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

type consoleSender struct {
	log logger.Logger
}

func (s *consoleSender) Send(ctx context.Context, msg EmailMessage) error {
	s.log.Info("Email would be sent",
		"to", msg.To, "subject", msg.Subject, "body", msg.Text)
	return nil
}

func formatParentAdminText(lead *ParentLead) string {
	var b strings.Builder
	b.WriteString("New Parent Lead Received!\n\n")
	fmt.Fprintf(&b, "Name: %s\n", lead.FullName)
	fmt.Fprintf(&b, "Email: %s\n", lead.Email)
	fmt.Fprintf(&b, "Phone: %s\n", orDefault(lead.Phone, "Not provided"))
	fmt.Fprintf(&b, "Location: %s\n", lead.Location)
	fmt.Fprintf(&b, "Due/Age: %s\n", lead.DueOrAge)
	fmt.Fprintf(&b, "Start Timeframe: %s\n", lead.StartTimeframe)
	fmt.Fprintf(&b, "Notes: %s\n", orDefault(lead.Notes, "None"))
	if lead.IsDuplicate {
		b.WriteString("\nDUPLICATE EMAIL DETECTED (within 30 days)\n")
	}
	fmt.Fprintf(&b, "\nSubmitted: %s\n", lead.CreatedAt.Format(time.RFC1123))
	fmt.Fprintf(&b, "User Agent: %s\n", defaultIfEmpty(lead.UserAgent, "Unknown"))
	fmt.Fprintf(&b, "IP Address: %s\n", defaultIfEmpty(lead.IPAddr, "Unknown"))
	return b.String()
}

func formatCaregiverAdminText(application *CaregiverApplication) string {
	var b strings.Builder
	b.WriteString("New Caregiver Application Received!\n\n")
	fmt.Fprintf(&b, "Name: %s\n", application.FullName)
	fmt.Fprintf(&b, "Email: %s\n", application.Email)
	fmt.Fprintf(&b, "Phone: %s\n", application.Phone)
	fmt.Fprintf(&b, "Base Location: %s\n", application.BaseLocation)
	fmt.Fprintf(&b, "Willing Regions: %s\n", application.WillingRegions)
	fmt.Fprintf(&b, "Experience: %s years\n", application.ExperienceYears)
	fmt.Fprintf(&b, "Certifications: %s\n", application.Certifications)
	fmt.Fprintf(&b, "Availability: %s\n", orDefault(application.AvailabilityNotes, "Not specified"))
	fmt.Fprintf(&b, "Experience Summary: %s\n", orDefault(application.ExperienceSummary, "Not provided"))
	if application.IsDuplicate {
		b.WriteString("\nDUPLICATE EMAIL DETECTED (within 30 days)\n")
	}
	fmt.Fprintf(&b, "\nSubmitted: %s\n", application.CreatedAt.Format(time.RFC1123))
	fmt.Fprintf(&b, "User Agent: %s\n", defaultIfEmpty(application.UserAgent, "Unknown"))
	fmt.Fprintf(&b, "IP Address: %s\n", defaultIfEmpty(application.IPAddr, "Unknown"))
	return b.String()
}

func formatParentConfirmationText(lead *ParentLead) string {
	first := strings.SplitN(lead.FullName, " ", 2)[0]
	return fmt.Sprintf(`Hi %s,

Thanks for joining the Tahoe Night Nurse priority list!

We're building a trusted network of certified night nurses right here in the Lake Tahoe region, and you're among the first to know when we launch.

What happens next?
- We'll keep you updated on our progress
- Priority access when we launch in your area (%s)
- No spam, just the important updates

Have questions? Just reply to this email.

Best,
The Tahoe Night Nurse Team`, first, lead.Location)
}

func formatCaregiverConfirmationText(application *CaregiverApplication) string {
	first := strings.SplitN(application.FullName, " ", 2)[0]
	return fmt.Sprintf(`Hi %s,

Thank you for your interest in joining the Tahoe Night Nurse team!

We've received your application and will review it carefully. If your experience and certifications match what local families are looking for, we'll reach out to schedule a conversation.

Best,
The Tahoe Night Nurse Team`, first)
}

func textToHTML(text string) string {
	escaped := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	).Replace(text)
	return "<p>" + strings.ReplaceAll(escaped, "\n\n", "</p><p>") + "</p>"
}

func orDefault(value *string, fallback string) string {
	if value == nil || *value == "" {
		return fallback
	}
	return *value
}

func defaultIfEmpty(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
