package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/helpinghands/backend/internal/model"
)

// Email is a rendered message ready for delivery. The sender address is
// always the SMTP account; FromName is only the display part.
type Email struct {
	FromName string
	ReplyTo  string
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// contact form input is plain text; strip any markup before it reaches the HTML body
var strict = bluemonday.StrictPolicy()

// sanitized fields are already escaped and must not be escaped twice
type contactData struct {
	Name      template.HTML
	FirstName template.HTML
	Email     string
	Phone     template.HTML
	Message   template.HTML
}

func or(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// BuildContactEmail renders a contact form submission addressed to to.
func BuildContactEmail(msg model.ContactMessage, to string) Email {
	return Email{
		FromName: fmt.Sprintf("%s %s", or(msg.FirstName, "Contact"), or(msg.LastName, "Form")),
		ReplyTo:  msg.Email,
		To:       to,
		Subject:  strings.TrimSpace(fmt.Sprintf("New Contact Form Submission from %s %s", or(msg.FirstName, "Unknown"), msg.LastName)),
		TextBody: buildContactText(msg),
		HTMLBody: buildContactHTML(msg),
	}
}

func buildContactText(msg model.ContactMessage) string {
	var buf bytes.Buffer
	buf.WriteString("New Contact Form Submission\n\n")
	buf.WriteString(fmt.Sprintf("Name: %s\n", strings.TrimSpace(or(msg.FirstName, "Not provided")+" "+msg.LastName)))
	buf.WriteString(fmt.Sprintf("Email: %s\n", msg.Email))
	if msg.Phone != "" {
		buf.WriteString(fmt.Sprintf("Phone: %s\n", msg.Phone))
	}
	buf.WriteString("\nMessage:\n")
	buf.WriteString(msg.Message + "\n\n")
	buf.WriteString("---\n")
	buf.WriteString("This email was sent from the Contact Us form on your website.\n")
	buf.WriteString(fmt.Sprintf("You can reply directly to this email to respond to %s.\n", or(msg.FirstName, "the sender")))
	return buf.String()
}

func sanitize(s string) template.HTML {
	return template.HTML(strict.Sanitize(s))
}

var contactHTML = template.Must(template.New("contact").Parse(contactHTMLTemplate))

func buildContactHTML(msg model.ContactMessage) string {
	data := contactData{
		Name:      sanitize(strings.TrimSpace(or(msg.FirstName, "Not provided") + " " + msg.LastName)),
		FirstName: sanitize(or(msg.FirstName, "the sender")),
		Email:     msg.Email,
		Phone:     sanitize(msg.Phone),
		Message:   sanitize(msg.Message),
	}
	var buf bytes.Buffer
	_ = contactHTML.Execute(&buf, data)
	return buf.String()
}

const contactHTMLTemplate = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333; border-bottom: 2px solid #4CAF50; padding-bottom: 10px;">New Contact Form Submission</h2>

  <div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px; margin: 20px 0;">
    <p><strong style="color: #555;">Name:</strong> {{.Name}}</p>
    <p><strong style="color: #555;">Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
    {{- if .Phone}}
    <p><strong style="color: #555;">Phone:</strong> {{.Phone}}</p>
    {{- end}}
  </div>

  <div style="background-color: #fff; padding: 20px; border-left: 4px solid #4CAF50; margin: 20px 0;">
    <h3 style="color: #333; margin-top: 0;">Message:</h3>
    <p style="color: #666; line-height: 1.6; white-space: pre-wrap;">{{.Message}}</p>
  </div>

  <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #ddd; color: #999; font-size: 12px;">
    <p>This email was sent from the Contact Us form on your website.</p>
    <p>You can reply directly to this email to respond to {{.FirstName}}.</p>
  </div>
</div>
`
