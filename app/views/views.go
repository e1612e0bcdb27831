// Package views holds the embedded HTML templates and the helpers they use.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

//go:embed templates
var files embed.FS

// pages maps a page name to the template files parsed for it, layout first.
var pages = map[string][]string{
	"posts/index": {"templates/layout.html", "templates/posts/index.html"},
	"posts/show":  {"templates/layout.html", "templates/posts/show.html", "templates/shared/comment-form.html"},
	"auth/login":  {"templates/layout.html", "templates/auth/login.html"},
}

// Funcs are available in every template.
var Funcs = template.FuncMap{
	"ago":  Ago,
	"date": Date,
	"nl2p": NewlinesToParagraphs,
}

// Load parses every page. Execute the "layout" template of the result.
func Load() (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template, len(pages))
	for name, paths := range pages {
		tmpl, err := template.New(name).Funcs(Funcs).ParseFS(files, paths...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		templates[name] = tmpl
	}
	return templates, nil
}

// Ago renders a timestamp relative to now, e.g. "3 hours ago".
func Ago(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.Time(t)
}

// Date renders a timestamp the way post headers show it.
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2 Jan 2006 15:04")
}

// NewlinesToParagraphs escapes text and wraps each line in a <p> element.
// Blank lines are dropped.
func NewlinesToParagraphs(text string) template.HTML {
	var b strings.Builder
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(template.HTMLEscapeString(line))
		b.WriteString("</p>")
	}
	return template.HTML(b.String())
}
