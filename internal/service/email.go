package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"docintake-backend/internal/domain"
	"docintake-backend/internal/logger"
)

type emailService struct {
	apiKey   string
	from     string
	fromName string
}

func NewEmailService(apiKey, from, fromName string) EmailService {
	return &emailService{
		apiKey:   apiKey,
		from:     from,
		fromName: fromName,
	}
}

func (s *emailService) SendRequestIssued(ctx context.Context, email, name, link, language string, kind domain.RequestKind, expiresOn time.Time) error {
	subject, plainText, htmlContent := renderRequestIssued(name, link, language, kind, expiresOn)

	from := mail.NewEmail(s.fromName, s.from)
	recipient := mail.NewEmail(name, email)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	logger.ExternalServiceCall("sendgrid", "send", "to", email, "kind", kind)
	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func renderRequestIssued(name, link, language string, kind domain.RequestKind, expiresOn time.Time) (subject, plainText, htmlContent string) {
	deadline := expiresOn.Format("02.01.2006")

	if language == "de" {
		subject = "Ihre Unterlagen werden benötigt"
		action := "die angeforderten Unterlagen hochzuladen"
		if kind == domain.RequestKindApplication {
			subject = "Ihr Antrag wartet auf Sie"
			action = "Ihren Antrag auszufüllen"
		}
		plainText = fmt.Sprintf("Guten Tag %s,\n\nbitte nutzen Sie den folgenden Link, um %s:\n\n%s\n\nDer Link ist gültig bis %s.", name, action, link, deadline)
		htmlContent = fmt.Sprintf(`<html><body><p>Guten Tag %s,</p><p>bitte nutzen Sie den folgenden Link, um %s:</p><p><a href="%s">%s</a></p><p>Der Link ist gültig bis %s.</p></body></html>`, name, action, link, link, deadline)
		return
	}

	subject = "Your documents are requested"
	action := "upload the requested documents"
	if kind == domain.RequestKindApplication {
		subject = "Your application is waiting for you"
		action = "fill out your application"
	}
	plainText = fmt.Sprintf("Hello %s,\n\nplease use the following link to %s:\n\n%s\n\nThe link is valid until %s.", name, action, link, deadline)
	htmlContent = fmt.Sprintf(`<html><body><p>Hello %s,</p><p>please use the following link to %s:</p><p><a href="%s">%s</a></p><p>The link is valid until %s.</p></body></html>`, name, action, link, link, deadline)
	return
}
