package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"time"
)

// Client handles outbound email. All platform email is best-effort; callers
// log failures and move on.
type Client struct {
	host     string
	port     string
	username string
	password string
	from     string
	secure   bool
}

// NewClient creates a new email client.
func NewClient(host, port, username, password, from string, secure bool) *Client {
	return &Client{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		secure:   secure,
	}
}

// Options represents a single outbound email.
type Options struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Send delivers an email with HTML and plain-text alternatives.
func (c *Client) Send(opts Options) error {
	wrapped := c.wrapHTML(opts.HTML)
	message := c.buildMessage(opts.To, opts.Subject, wrapped, opts.Text)

	auth := smtp.PlainAuth("", c.username, c.password, c.host)
	addr := fmt.Sprintf("%s:%s", c.host, c.port)

	if err := smtp.SendMail(addr, auth, c.from, []string{opts.To}, []byte(message)); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	return nil
}

var layoutTmpl = template.Must(template.New("email").Parse(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background: #f9f9f9;">
    <div style="padding: 32px;">
        <div style="max-width: 600px; margin: auto; background: #fff; border-radius: 8px; box-shadow: 0 2px 8px #eee; padding: 32px;">
            <div style="text-align: center; margin-bottom: 24px;">
                <h2 style="color: #ea580c; margin: 0;">CodeArc</h2>
            </div>
            <div style="font-size: 16px; color: #333;">
                {{.Content}}
            </div>
            <div style="margin-top: 32px; text-align: center; color: #aaa; font-size: 12px;">
                &copy; {{.Year}} CodeArc. All rights reserved.
            </div>
        </div>
    </div>
</body>
</html>
`))

func (c *Client) wrapHTML(content string) string {
	var buf bytes.Buffer
	err := layoutTmpl.Execute(&buf, map[string]interface{}{
		"Content": template.HTML(content),
		"Year":    time.Now().Year(),
	})
	if err != nil {
		return content
	}
	return buf.String()
}

func (c *Client) buildMessage(to, subject, html, text string) string {
	from := c.from
	if from == "" {
		from = "noreply@codearc.dev"
	}

	msg := fmt.Sprintf("From: %s\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", to)
	msg += fmt.Sprintf("Subject: %s\r\n", subject)
	msg += "MIME-Version: 1.0\r\n"
	msg += "Content-Type: multipart/alternative; boundary=\"boundary42\"\r\n"
	msg += "\r\n"

	if text != "" {
		msg += "--boundary42\r\n"
		msg += "Content-Type: text/plain; charset=\"UTF-8\"\r\n"
		msg += "\r\n"
		msg += text + "\r\n"
	}

	msg += "--boundary42\r\n"
	msg += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	msg += "\r\n"
	msg += html + "\r\n"
	msg += "--boundary42--\r\n"

	return msg
}

// SendWelcome greets a newly registered user.
func (c *Client) SendWelcome(to, userName string) error {
	html := fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>Welcome to CodeArc! Your account is ready.</p>
		<p>Browse the course catalog and enroll to start learning.</p>
	`, userName)

	return c.Send(Options{
		To:      to,
		Subject: "Welcome to CodeArc",
		HTML:    html,
		Text:    fmt.Sprintf("Hello %s, welcome to CodeArc!", userName),
	})
}

// SendMentorApproved tells a mentor their account was approved by an admin.
func (c *Client) SendMentorApproved(to, mentorName string) error {
	html := fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>Your mentor account has been approved. You can now sign in and manage your courses.</p>
	`, mentorName)

	return c.Send(Options{
		To:      to,
		Subject: "Your mentor account is approved",
		HTML:    html,
		Text:    fmt.Sprintf("Hello %s, your mentor account has been approved.", mentorName),
	})
}
