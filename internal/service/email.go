package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"campus-community-backend/internal/logger"
)

type emailService struct {
	client   *sendgrid.Client
	fromName string
	fromAddr string
}

func NewEmailService(apiKey, fromName, fromAddr string) EmailService {
	return &emailService{
		client:   sendgrid.NewSendClient(apiKey),
		fromName: fromName,
		fromAddr: fromAddr,
	}
}

func (s *emailService) SendAdmissionResult(ctx context.Context, email, name string, accepted bool) error {
	subject := "Your admission has been approved"
	body := fmt.Sprintf("Hello %s,\n\nYour account has been approved. You can now sign in and use the service.", name)
	if !accepted {
		subject = "Your admission was not approved"
		body = fmt.Sprintf("Hello %s,\n\nUnfortunately your sign-up could not be approved. Contact the student council for details.", name)
	}
	return s.send(email, name, subject, body)
}

func (s *emailService) SendRoleChangeNotification(ctx context.Context, email, name, role string) error {
	subject := "Your role has changed"
	body := fmt.Sprintf("Hello %s,\n\nYou have been granted the %s role.", name, role)
	return s.send(email, name, subject, body)
}

func (s *emailService) send(toAddr, toName, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromAddr)
	to := mail.NewEmail(toName, toAddr)
	message := mail.NewSingleEmail(from, subject, to, body, body)

	logger.ExternalServiceCall("sendgrid", "send", "to", toAddr, "subject", subject)
	resp, err := s.client.Send(message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}
	if resp.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid rejected the message: status %d", resp.StatusCode)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}
	logger.ExternalServiceResult("sendgrid", "send", nil, "status", resp.StatusCode)
	return nil
}
