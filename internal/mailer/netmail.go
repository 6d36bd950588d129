package mailer

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/mail"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

type NetMailer struct {
	Dialer *gomail.Dialer
}

func InitNetMailer() error {
	port, err := strconv.Atoi(os.Getenv("MAIL_PORT"))
	if err != nil {
		return fmt.Errorf("Invalid port: %w", err)
	}
	dialer := gomail.NewDialer(os.Getenv("MAIL_HOST"), port, os.Getenv("MAIL_EMAIL"), os.Getenv("MAIL_PASSWORD"))
	DefaultMailer = &NetMailer{Dialer: dialer}
	return nil
}

func newMessage(to *mail.Address, subject string, body template.HTML) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", Sender)
	m.SetHeader("To", to.Address)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", string(body))
	return m
}

// SendMail sends in the background, delivery failures are only logged.
func (mailer *NetMailer) SendMail(to *mail.Address, subject string, body template.HTML) error {
	m := newMessage(to, subject, body)
	go func() {
		if err := mailer.Dialer.DialAndSend(m); err != nil {
			slog.Error("Failed to send netmail", "err", err, slog.String("to", to.Address), slog.String("subject", subject))
		} else {
			slog.Info("Net mail sent", slog.String("to", to.Address), slog.String("subject", subject))
		}
	}()
	return nil
}
