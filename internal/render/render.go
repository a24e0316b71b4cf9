// Package render builds channel-specific message bodies from a
// notification title and content. Rendering is pure: no I/O, no state.
package render

import (
	"fmt"
	"html/template"
	"strings"
)

// fallbackName is used when a recipient has no display identifier.
const fallbackName = "Valued Customer"

// emailTmpl embeds title and content into an HTML alert document.
// html/template escapes title, content and recipient name, so
// user-supplied text cannot inject markup into the message.
var emailTmpl = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; }
        .header { background-color: #4CAF50; color: white; padding: 10px; text-align: center; }
        .content { margin: 20px 0; }
    </style>
</head>
<body>
    <div class="header">
        {{.Title}}
    </div>
    <div class="content">
        <p>Dear {{.RecipientName}},</p>
        <p>{{.Content}}</p>
        <p>The Team</p>
    </div>
</body>
</html>
`))

type emailData struct {
	Title         string
	Content       string
	RecipientName string
}

// Email renders the HTML body for one recipient. The recipient name
// falls back to a generic greeting when empty.
func Email(title, content, recipientName string) (string, error) {
	if recipientName == "" {
		recipientName = fallbackName
	}

	var b strings.Builder
	err := emailTmpl.Execute(&b, emailData{
		Title:         title,
		Content:       content,
		RecipientName: recipientName,
	})
	if err != nil {
		return "", fmt.Errorf("execute email template: %w", err)
	}

	return b.String(), nil
}

// SMS renders the plain-text body: "{title}: {content}".
func SMS(title, content string) string {
	return fmt.Sprintf("%s: %s", title, content)
}
