package utils

import (
	"context"

	"github.com/Sodstar/mountain-pos/config"
	"gopkg.in/gomail.v2"
)

func SendEmail(message *gomail.Message, sender string, password string, smtpServer string, smtpPort int) error {
	d := gomail.NewDialer(smtpServer, smtpPort, sender, password)

	if err := d.DialAndSend(message); err != nil {
		return err
	}

	return nil
}

// Mailer sends HTML mail to the administrator address over SMTP.
type Mailer struct {
	conf config.SMTPConfig
	send func(message *gomail.Message) error
}

func NewMailer(conf config.SMTPConfig) *Mailer {
	m := &Mailer{conf: conf}
	m.send = func(message *gomail.Message) error {
		return SendEmail(message, conf.Sender, conf.Password, conf.Host, conf.Port)
	}
	return m
}

func (m *Mailer) Notify(ctx context.Context, subject string, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	message := gomail.NewMessage()
	message.SetHeader("From", m.conf.Sender)
	message.SetHeader("To", m.conf.AdminEmail)
	message.SetHeader("Subject", subject)
	message.SetBody("text/html", body)

	return m.send(message)
}
