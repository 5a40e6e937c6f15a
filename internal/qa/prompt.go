// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package qa

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/pdiddy/paper-digest/pkg/types"
)

var answerPromptTmpl = template.Must(template.New("answer").Parse(`Based on these recent AI papers:

{{.Context}}

Answer this question concisely, citing 1-2 relevant papers if applicable:
{{.Question}}
`))

// RenderContext renders each paper as a Title/Abstract block and joins the
// blocks with a blank line.
func RenderContext(papers []types.Paper) string {
	blocks := make([]string, len(papers))
	for i, p := range papers {
		blocks[i] = "Title: " + p.Title + "\nAbstract: " + p.Abstract
	}
	return strings.Join(blocks, "\n\n")
}

// RenderPrompt fills the answer template with question and context.
func RenderPrompt(question, context string) (string, error) {
	var buf bytes.Buffer
	err := answerPromptTmpl.Execute(&buf, struct{ Question, Context string }{question, context})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
