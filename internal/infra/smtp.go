package infra

import (
	"fmt"
	"net/smtp"

	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for the welcome emails.
type Mailer struct {
	host     string
	user     string
	password string
	from     string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	from := cfg.SMTPFrom
	if from == "" {
		from = cfg.SMTPUser
	}
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     from,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// SendBienvenida tells a new user that their account exists and which role it has.
func (m *Mailer) SendBienvenida(to, nombre, rol string) error {
	if m.host == "" {
		return fmt.Errorf("mailer: SMTP_HOST not configured")
	}
	e := bienvenida(m.from, to, nombre, rol)

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}
	return e.Send(m.addr, auth)
}

func bienvenida(from, to, nombre, rol string) *email.Email {
	e := email.NewEmail()
	e.From = from
	e.To = []string{to}
	e.Subject = "Bienvenido/a a la Veterinaria"
	e.Text = []byte(fmt.Sprintf(
		"Hola %s,\n\nSe creo tu cuenta con el rol %s. Ya podes iniciar sesion con este email (%s).\n",
		nombre, rol, to,
	))
	return e
}
