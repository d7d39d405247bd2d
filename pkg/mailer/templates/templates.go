// Package templates renders the transactional emails sent by the worker.
package templates

import (
	"bytes"
	"fmt"
	htmltpl "html/template"
	texttpl "text/template"
)

var welcomeText = texttpl.Must(texttpl.New("welcome_text").Parse(
	`Hi {{.Name}},

Your account is ready. Sign in to browse stores and share your ratings.

— The Store Ratings Team
`))

var welcomeHTML = htmltpl.Must(htmltpl.New("welcome_html").Parse(
	`<p>Hi {{.Name}},</p>
<p>Your account is ready. Sign in to browse stores and share your ratings.</p>
<p>— The Store Ratings Team</p>
`))

// Render produces subject, text, and HTML bodies for a named template.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	switch name {
	case "welcome":
		var tb, hb bytes.Buffer
		if err = welcomeText.Execute(&tb, data); err != nil {
			return
		}
		if err = welcomeHTML.Execute(&hb, data); err != nil {
			return
		}
		return "Welcome to Store Ratings", tb.String(), hb.String(), nil
	default:
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
}
