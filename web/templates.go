package web

import (
	"embed"
	"html/template"
	"strings"
	"sync"

	"blog/utils"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

var (
	templates     *template.Template
	templatesOnce sync.Once
)

var funcs = template.FuncMap{
	"date":         utils.FormatDate,
	"linebreaksbr": linebreaksbr,
	"truncate":     truncate,
}

// Templates returns the parsed page templates, they are embedded in the binary
func Templates() *template.Template {
	templatesOnce.Do(func() {
		templates = template.Must(template.New("").Funcs(funcs).ParseFS(templateFiles, "templates/*.tmpl"))
	})
	return templates
}

// linebreaksbr escapes the text and keeps its line breaks
func linebreaksbr(text string) template.HTML {
	escaped := template.HTMLEscapeString(strings.ReplaceAll(text, "\r\n", "\n"))
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

func truncate(n int, text string) string {
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	return string(r[:n]) + "…"
}
