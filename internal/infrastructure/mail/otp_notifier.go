// Package mail entrega los códigos OTP por correo.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/jhoicas/BillSync-api/internal/application/auth"
	"github.com/jhoicas/BillSync-api/pkg/config"
	"github.com/jhoicas/BillSync-api/pkg/logger"
)

var (
	_ auth.Notifier = (*SMTPNotifier)(nil)
	_ auth.Notifier = (*LogNotifier)(nil)
)

const otpSubject = "Tu código de verificación de BillSync"

// SMTPNotifier envía el OTP con net/smtp.
type SMTPNotifier struct {
	cfg  config.SMTPConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPNotifier construye el notificador SMTP.
func NewSMTPNotifier(cfg config.SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, send: smtp.SendMail}
}

func (n *SMTPNotifier) SendOTP(ctx context.Context, to, name, code string, expiresAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var a smtp.Auth
	if n.cfg.Username != "" && n.cfg.Password != "" {
		a = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}
	msg := buildMessage(n.cfg.Sender, to, otpSubject, otpBody(name, code, expiresAt))
	if err := n.send(n.cfg.Addr(), a, n.cfg.Sender, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp: enviar OTP: %w", err)
	}
	return nil
}

// LogNotifier escribe el OTP en el log. Solo para desarrollo sin SMTP.
type LogNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) SendOTP(_ context.Context, to, _, code string, expiresAt time.Time) error {
	n.log.Warn().Str("to", to).Str("otp", code).Time("expires_at", expiresAt).Msg("SMTP no configurado; OTP solo en log")
	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\nTo: %s\r\nSubject: %s\r\n", from, to, subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

func otpBody(name, code string, expiresAt time.Time) string {
	return fmt.Sprintf(
		"<p>Hola %s,</p><p>Tu código de verificación es <strong>%s</strong>.</p><p>Vence a las %s UTC.</p>",
		htmlEscape(name), code, expiresAt.UTC().Format("15:04"),
	)
}

var htmlReplacer = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func htmlEscape(s string) string { return htmlReplacer.Replace(s) }
