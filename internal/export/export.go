// Package export renders exported document markdown into standalone
// HTML pages.
package export

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// md is the shared markdown renderer. GFM covers the tables, task
// lists and strikethrough the workspace editor produces; raw HTML in
// document bodies stays escaped.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { max-width: 46rem; margin: 2rem auto; padding: 0 1rem; font-family: sans-serif; line-height: 1.6; }
pre { background: #f4f4f4; padding: 0.8rem; overflow-x: auto; }
code { background: #f4f4f4; padding: 0.1rem 0.3rem; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.3rem 0.6rem; }
blockquote { border-left: 3px solid #ccc; margin-left: 0; padding-left: 1rem; color: #555; }
</style>
</head>
<body>
%s</body>
</html>
`

// HTML renders markdown into a self-contained HTML page.
func HTML(title, markdown string) (string, error) {
	var body bytes.Buffer
	if err := md.Convert([]byte(markdown), &body); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	if strings.TrimSpace(title) == "" {
		title = "Untitled"
	}

	return fmt.Sprintf(pageTemplate, html.EscapeString(title), body.String()), nil
}
