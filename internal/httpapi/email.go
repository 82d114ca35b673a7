package httpapi

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/MirBabaTravels/booking_svc/internal/model"
)

const (
	inquiryEmailSubject         = "Thank You for Your Inquiry - Mir Baba Tour and Travels"
	bookingEmailSubjectTemplate = "Booking Inquiry Received - %s | Mir Baba Tour and Travels"

	logEventEmailSkipped = "confirmation_email_skipped"
	logFieldRecipient    = "recipient"
	logFieldSubject      = "subject"
)

// EmailSender sends an email message to a recipient.
type EmailSender interface {
	SendEmail(ctx context.Context, recipient string, subject string, message string) error
}

// SMTPConfig captures the SMTP relay settings for outgoing mail.
type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
}

// IsConfigured reports whether enough settings are present to send mail.
func (configuration SMTPConfig) IsConfigured() bool {
	return strings.TrimSpace(configuration.Host) != "" && strings.TrimSpace(configuration.FromAddress) != ""
}

// SMTPEmailSender delivers mail through a plain SMTP relay.
type SMTPEmailSender struct {
	configuration SMTPConfig
}

// NewSMTPEmailSender creates an SMTPEmailSender with the provided settings.
func NewSMTPEmailSender(configuration SMTPConfig) *SMTPEmailSender {
	return &SMTPEmailSender{configuration: configuration}
}

// SendEmail sends a single text message through the configured relay.
func (sender *SMTPEmailSender) SendEmail(_ context.Context, recipient string, subject string, message string) error {
	fromHeader := sender.configuration.FromAddress
	if sender.configuration.FromName != "" {
		fromHeader = fmt.Sprintf("%s <%s>", sender.configuration.FromName, sender.configuration.FromAddress)
	}

	var payload strings.Builder
	payload.WriteString(fmt.Sprintf("From: %s\r\n", fromHeader))
	payload.WriteString(fmt.Sprintf("To: %s\r\n", recipient))
	payload.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	payload.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	payload.WriteString(message)

	relayAddress := fmt.Sprintf("%s:%d", sender.configuration.Host, sender.configuration.Port)
	var authentication smtp.Auth
	if sender.configuration.Username != "" {
		authentication = smtp.PlainAuth("", sender.configuration.Username, sender.configuration.Password, sender.configuration.Host)
	}

	if sendErr := smtp.SendMail(relayAddress, authentication, sender.configuration.FromAddress, []string{recipient}, []byte(payload.String())); sendErr != nil {
		return fmt.Errorf("send email: %w", sendErr)
	}
	return nil
}

// LogEmailSender records outgoing mail in the log instead of delivering it.
// Used when no SMTP relay is configured.
type LogEmailSender struct {
	logger *zap.Logger
}

// NewLogEmailSender creates a LogEmailSender writing to the provided logger.
func NewLogEmailSender(logger *zap.Logger) *LogEmailSender {
	return &LogEmailSender{logger: logger}
}

// SendEmail logs the message and reports success.
func (sender *LogEmailSender) SendEmail(_ context.Context, recipient string, subject string, _ string) error {
	sender.logger.Info(logEventEmailSkipped,
		zap.String(logFieldRecipient, recipient),
		zap.String(logFieldSubject, subject),
	)
	return nil
}

func inquiryConfirmationBody(record model.Inquiry) string {
	var body strings.Builder
	body.WriteString(fmt.Sprintf("Thank You, %s!\n\n", record.Name))
	body.WriteString("We have received your inquiry and our travel experts will contact you within 24 hours.\n\n")
	body.WriteString(fmt.Sprintf("Reference: %s\n\n", record.ID))
	body.WriteString("Contact us:\nCall (Priority): +91 6005107475\nOur WhatsApp: +91 9906646113\nEmail: mirbabatourtravels@gmail.com\n")
	return body.String()
}

func bookingConfirmationBody(record model.Inquiry, tourPackage model.TourPackage, travelDate string) string {
	if travelDate == "" {
		travelDate = "To be confirmed"
	}

	var body strings.Builder
	body.WriteString(fmt.Sprintf("Hello %s,\n\n", record.Name))
	body.WriteString("Your booking inquiry has been received! We're excited to welcome you to Kashmir.\n\n")
	body.WriteString(fmt.Sprintf("Package: %s\nDuration: %s\nTravel Date: %s\nBooking ID: %s\n\n", tourPackage.Title, tourPackage.Duration, travelDate, record.ID))
	body.WriteString("Our team will contact you shortly with further details and payment instructions.\n")
	return body.String()
}
