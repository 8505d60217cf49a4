package export

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var documentTemplate = template.Must(
	template.New("document.html").Funcs(template.FuncMap{
		"lower": strings.ToLower,
		"formatDate": func(t time.Time, layout string) string {
			return t.Format(layout)
		},
	}).ParseFS(templateFS, "templates/document.html"),
)

// TemplateData holds data for the print page.
type TemplateData struct {
	Title     string
	Kind      string
	BodyHTML  template.HTML
	UpdatedAt time.Time
}

// NewTemplateData wraps doc for rendering. The body is editor output and is
// inserted as trusted markup.
func NewTemplateData(doc Document) TemplateData {
	return TemplateData{
		Title:     doc.Title,
		Kind:      doc.Kind,
		BodyHTML:  template.HTML(doc.Body),
		UpdatedAt: doc.UpdatedAt,
	}
}

// RenderDocumentHTML renders a self-contained print page.
func RenderDocumentHTML(data TemplateData) (string, error) {
	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}
	return buf.String(), nil
}
