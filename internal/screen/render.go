package screen

import (
	"bytes"
	"embed"
	"html/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTmpl = template.Must(template.New("profile.html.tmpl").ParseFS(templateFS, "templates/profile.html.tmpl"))

// RenderHTML renders the server-side profile page for a snapshot.
func RenderHTML(v ScreenView) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
