package adapter

import (
	"embed"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(
	template.New("formatter").
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(templateFS, "templates/*.tmpl"),
)

func render(name string, data any) (string, error) {
	var builder strings.Builder
	if err := templates.ExecuteTemplate(&builder, name, data); err != nil {
		return "", err
	}
	return strings.TrimRight(builder.String(), "\n"), nil
}
