// Package notification delivers hot lead alert emails over SMTP.
package notification

import (
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// Sender delivers alert emails. Satisfied by SMTPSender; tests substitute
// a recording fake.
type Sender interface {
	SendHotLeadAlert(ctx context.Context, toEmail string, alert HotLeadAlert) error
}

// HotLeadAlert carries the fields rendered into the alert email.
type HotLeadAlert struct {
	ExternalID      string
	BuyerName       string
	BuyerEmail      string
	QualityScore    int
	IntentScore     int
	ConfidenceScore int
	Priority        string
	NextAction      string
	Summary         string
}

// SMTPSender sends alert emails through a direct SMTP connection via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromEmail string
}

func NewSMTPSender(host string, port int, username, password, fromEmail string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromEmail: fromEmail,
	}
}

var hotLeadTemplate = template.Must(template.New("hot_lead").Parse(`
<h2>Hot lead: {{.BuyerName}}</h2>
<p>{{.Summary}}</p>
<table>
  <tr><td>External ID</td><td>{{.ExternalID}}</td></tr>
  <tr><td>Email</td><td>{{.BuyerEmail}}</td></tr>
  <tr><td>Quality</td><td>{{.QualityScore}}</td></tr>
  <tr><td>Intent</td><td>{{.IntentScore}}</td></tr>
  <tr><td>Confidence</td><td>{{.ConfidenceScore}}</td></tr>
  <tr><td>Priority</td><td>{{.Priority}}</td></tr>
</table>
<p><strong>Next action:</strong> {{.NextAction}}</p>
`))

// SendHotLeadAlert renders and sends one alert email.
func (s *SMTPSender) SendHotLeadAlert(ctx context.Context, toEmail string, alert HotLeadAlert) error {
	var body strings.Builder
	if err := hotLeadTemplate.Execute(&body, alert); err != nil {
		return fmt.Errorf("render hot lead alert: %w", err)
	}

	msg := gomail.NewMsg()
	if err := msg.From(s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(fmt.Sprintf("Hot lead alert: %s", alert.ExternalID))
	msg.SetBodyString(gomail.TypeTextHTML, body.String())

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
