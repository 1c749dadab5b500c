package visualization

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/jarch13/Entangle.Me/internal/models"
)

// templates contains the embedded HTML templates.
//
//go:embed templates/*
var templates embed.FS

var reportFuncs = template.FuncMap{
	"fixed": FormatFixed,
}

// RenderHTML produces a self-contained HTML page for the report.
func RenderHTML(r *models.Report) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("render html: nil report")
	}

	tmplBytes, err := templates.ReadFile("templates/report.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("read HTML template: %w", err)
	}

	tmpl, err := template.New("report").Funcs(reportFuncs).Parse(string(tmplBytes))
	if err != nil {
		return nil, fmt.Errorf("parse HTML template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newReportView(r)); err != nil {
		return nil, fmt.Errorf("execute HTML template: %w", err)
	}
	return buf.Bytes(), nil
}
