// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summary

import (
	"bytes"
	"text/template"
)

// summaryPromptTmpl asks for a three-point practical summary. Title and
// abstract are substituted verbatim.
var summaryPromptTmpl = template.Must(template.New("summary").Parse(`Summarize this AI paper in 3 brief points:
Title: {{.Title}}
Abstract: {{.Abstract}}
`))

// RenderPrompt fills the summary template with title and abstract.
func RenderPrompt(title, abstract string) (string, error) {
	var buf bytes.Buffer
	err := summaryPromptTmpl.Execute(&buf, struct{ Title, Abstract string }{title, abstract})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
