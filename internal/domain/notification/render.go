package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/gosimple/slug"

	"quotewizard/internal/domain/lead"
)

const (
	Brand       = "Daki Retail Media"
	PDFFilename = "cotacao.pdf"
)

var emailTemplate = template.Must(template.New("quote").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937;">
  <h2>Novo pedido de cotação</h2>
  <table cellpadding="6">
    <tr><td><strong>Nome</strong></td><td>{{.Summary.Name}}</td></tr>
    <tr><td><strong>Email</strong></td><td>{{.Summary.Email}}</td></tr>
    <tr><td><strong>Objetivo</strong></td><td>{{.Summary.Objective}}</td></tr>
    <tr><td><strong>Inventário</strong></td><td>{{range $i, $o := .Summary.Inventory}}{{if $i}}, {{end}}{{$o}}{{end}}</td></tr>
    <tr><td><strong>Orçamento</strong></td><td>{{.Summary.Budget}}</td></tr>
    {{if .Summary.Period}}<tr><td><strong>Período</strong></td><td>{{.Summary.Period}}</td></tr>{{end}}
    {{if .Summary.Products}}<tr><td><strong>Produtos</strong></td><td>{{.Summary.Products}}</td></tr>{{end}}
    {{if .Summary.Notes}}<tr><td><strong>Detalhes adicionais</strong></td><td>{{.Summary.Notes}}</td></tr>{{end}}
  </table>
  <p style="color: #6b7280; font-size: 12px;">Recebido em {{.Received}} · {{.Brand}}</p>
</body>
</html>
`))

// Renderer builds the email and PDF views of a lead
type Renderer struct {
	now func() time.Time
}

func NewRenderer() *Renderer {
	return &Renderer{now: time.Now}
}

// Subject returns the notification subject line
func (r *Renderer) Subject(l *lead.Lead) string {
	return "Novo pedido de cotação – " + l.Name
}

// HTML renders the notification body
func (r *Renderer) HTML(l *lead.Lead) (string, error) {
	var buf bytes.Buffer
	err := emailTemplate.Execute(&buf, struct {
		Summary  lead.Summary
		Received string
		Brand    string
	}{
		Summary:  lead.Summarize(l),
		Received: l.CreatedAt.Format("02/01/2006 15:04"),
		Brand:    Brand,
	})
	if err != nil {
		return "", fmt.Errorf("render email: %w", err)
	}
	return buf.String(), nil
}

// PDF renders a one-page quote summary
func (r *Renderer) PDF(l *lead.Lead) ([]byte, error) {
	s := lead.Summarize(l)
	now := r.now()

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Cotação - "+Brand, true)
	pdf.SetCreator(Brand, true)
	pdf.SetCreationDate(now)
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr("Cotação - "+Brand), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(107, 114, 128)
	pdf.CellFormat(0, 6, tr("Gerado em "+now.Format("02/01/2006")), "", 1, "L", false, 0, "")
	pdf.Ln(6)
	pdf.SetTextColor(31, 41, 55)

	row := func(label, value string) {
		if value == "" {
			return
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(45, 7, tr(label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 7, tr(value), "", "L", false)
	}

	row("Nome", s.Name)
	row("Email", s.Email)
	row("Objetivo", s.Objective)
	for i, item := range s.Inventory {
		label := ""
		if i == 0 {
			label = "Inventário"
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(45, 7, tr(label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 7, tr("• "+item), "", "L", false)
	}
	row("Orçamento", s.Budget)
	row("Período", s.Period)
	row("Produtos", s.Products)
	row("Detalhes", s.Notes)
	row("Status", string(s.Status))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// DownloadName is the file name used for admin downloads
func DownloadName(l *lead.Lead) string {
	name := slug.Make(l.Name)
	if name == "" {
		return PDFFilename
	}
	return "cotacao-" + name + ".pdf"
}
