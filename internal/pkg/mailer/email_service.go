package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendRoundReady(toEmail, projectName string, round int, houseCount int) error
	SendProjectCompleted(toEmail, projectName string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendRoundReady(toEmail, projectName string, round int, houseCount int) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("New recommendations ready for %s", projectName))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Round %d is ready</h2>
			<p>%d new houses were selected for <b>%s</b>.</p>
			<p>Open the project to review and rate them.</p>
		</div>
	`, round, houseCount, projectName)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send round-ready mail to %s: %w", toEmail, err)
	}
	return nil
}

func (s *emailService) SendProjectCompleted(toEmail, projectName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("All rounds completed for %s", projectName))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Recommendation rounds finished</h2>
			<p>The customer has rated every round for <b>%s</b>.</p>
			<p>Review the ratings and prepare the follow-up.</p>
		</div>
	`, projectName)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send completion mail to %s: %w", toEmail, err)
	}
	return nil
}
