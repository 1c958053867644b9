package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/metrics"
)

const (
	subjectRegistrationOTP = "Email Verification OTP"
	subjectPasswordReset   = "Password Reset Request"
	subjectCredentials     = "Your Resume Builder account"
	subjectAccountCreated  = "Account Created - Change Your Password"
)

var (
	otpTmpl = template.Must(template.New("otp").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>{{.Title}}</h2>
  <p>Hello{{if .Name}} {{.Name}}{{end}},</p>
  <p>Use the code below to {{.Purpose}}.</p>
  <p style="font-size: 28px; font-weight: bold; letter-spacing: 6px;">{{.Code}}</p>
  <p>This code is valid for {{.Minutes}} minutes. If you did not request it, you can ignore this email.</p>
</body>
</html>`))

	credentialsTmpl = template.Must(template.New("credentials").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <p>Dear {{.Name}},</p>
  <p>An account has been created for you.</p>
  <p>Email: <strong>{{.Email}}</strong><br>Password: <strong>{{.Password}}</strong></p>
  <p>Please sign in and change your password.</p>
</body>
</html>`))

	accountCreatedTmpl = template.Must(template.New("account_created").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <p>Dear {{.Name}},</p>
  <p>Your account has been created. Set your password using the link below:</p>
  <p><a href="{{.Link}}">{{.Link}}</a></p>
</body>
</html>`))
)

// Notifier renders account emails and hands them to a Sender.
type Notifier struct {
	sender     Sender
	otpTTL     time.Duration
	appBaseURL string
}

func NewNotifier(sender Sender, otpTTL time.Duration, appBaseURL string) *Notifier {
	return &Notifier{sender: sender, otpTTL: otpTTL, appBaseURL: appBaseURL}
}

func (n *Notifier) SendRegistrationOTP(ctx context.Context, to, firstName, code string) error {
	body, err := render(otpTmpl, map[string]any{
		"Title":   subjectRegistrationOTP,
		"Name":    firstName,
		"Purpose": "complete your registration",
		"Code":    code,
		"Minutes": int(n.otpTTL.Minutes()),
	})
	if err != nil {
		return err
	}
	return n.deliver(ctx, "registration_otp", to, subjectRegistrationOTP, body)
}

func (n *Notifier) SendPasswordResetOTP(ctx context.Context, to, code string) error {
	body, err := render(otpTmpl, map[string]any{
		"Title":   subjectPasswordReset,
		"Purpose": "reset your password",
		"Code":    code,
		"Minutes": int(n.otpTTL.Minutes()),
	})
	if err != nil {
		return err
	}
	return n.deliver(ctx, "password_reset_otp", to, subjectPasswordReset, body)
}

func (n *Notifier) SendCredentials(ctx context.Context, to, firstName, password string) error {
	body, err := render(credentialsTmpl, map[string]any{
		"Name":     firstName,
		"Email":    to,
		"Password": password,
	})
	if err != nil {
		return err
	}
	return n.deliver(ctx, "credentials", to, subjectCredentials, body)
}

func (n *Notifier) SendAccountCreated(ctx context.Context, to, firstName string) error {
	body, err := render(accountCreatedTmpl, map[string]any{
		"Name": firstName,
		"Link": n.appBaseURL + "/api/password/forgot",
	})
	if err != nil {
		return err
	}
	return n.deliver(ctx, "account_created", to, subjectAccountCreated, body)
}

func (n *Notifier) deliver(ctx context.Context, name, to, subject, body string) error {
	if err := n.sender.Send(ctx, to, subject, body); err != nil {
		metrics.EmailsSentTotal.WithLabelValues(name, "error").Inc()
		return err
	}
	metrics.EmailsSentTotal.WithLabelValues(name, "ok").Inc()
	return nil
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s email: %w", t.Name(), err)
	}
	return buf.String(), nil
}
