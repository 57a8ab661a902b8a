// Package mailer delivers outbound account mail over SMTP.
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/go-mail/mail/v2"
	"github.com/workdeck/workdeck-api/internal/config"
	"github.com/workdeck/workdeck-api/internal/domain"
)

// welcomeTemplate carries the subject, plain and HTML bodies of the
// post-registration message.
var welcomeTemplate = template.Must(template.New("welcome").Parse(`
{{define "subject"}}Welcome to Workdeck{{end}}

{{define "plainBody"}}Hi {{.Name}},

Your Workdeck account is ready. Sign in with your username {{.Username}}
to create your first workspace.

The Workdeck team{{end}}

{{define "htmlBody"}}<html>
<body>
<p>Hi {{.Name}},</p>
<p>Your Workdeck account is ready. Sign in with your username
<strong>{{.Username}}</strong> to create your first workspace.</p>
<p>The Workdeck team</p>
</body>
</html>{{end}}
`))

// sendAttempts is how many times a delivery is retried before giving up.
const sendAttempts = 3

// Mailer sends mail through a single SMTP dialer. Safe for concurrent use;
// each send opens its own connection.
type Mailer struct {
	dialer *mail.Dialer
	sender string
	logger *slog.Logger
}

// New creates a Mailer from the mail configuration. Returns nil when mail
// is not configured; callers treat a nil Mailer as disabled.
func New(cfg config.MailConfig, log *slog.Logger) *Mailer {
	if !cfg.Enabled() {
		return nil
	}
	if log == nil {
		log = slog.Default()
	}

	return &Mailer{
		dialer: mail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		sender: cfg.Sender,
		logger: log.With(slog.String("component", "mailer")),
	}
}

// SendWelcome delivers the post-registration welcome message.
func (m *Mailer) SendWelcome(user *domain.User) error {
	name := user.FullName()
	if name == "" {
		name = user.Username
	}

	return m.send(user.Email, welcomeTemplate, map[string]string{
		"Name":     name,
		"Username": user.Username,
	})
}

func (m *Mailer) send(to string, tmpl *template.Template, data any) error {
	var subject bytes.Buffer
	if err := tmpl.ExecuteTemplate(&subject, "subject", data); err != nil {
		return fmt.Errorf("failed to render subject: %w", err)
	}
	var plainBody bytes.Buffer
	if err := tmpl.ExecuteTemplate(&plainBody, "plainBody", data); err != nil {
		return fmt.Errorf("failed to render plain body: %w", err)
	}
	var htmlBody bytes.Buffer
	if err := tmpl.ExecuteTemplate(&htmlBody, "htmlBody", data); err != nil {
		return fmt.Errorf("failed to render html body: %w", err)
	}

	msg := mail.NewMessage()
	msg.SetHeader("To", to)
	msg.SetHeader("From", m.sender)
	msg.SetHeader("Subject", subject.String())
	msg.SetBody("text/plain", plainBody.String())
	msg.AddAlternative("text/html", htmlBody.String())

	var err error
	for i := 0; i < sendAttempts; i++ {
		if err = m.dialer.DialAndSend(msg); err == nil {
			return nil
		}
		m.logger.Warn("mail delivery attempt failed",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
	}
	return fmt.Errorf("failed to deliver mail after %d attempts: %w", sendAttempts, err)
}
