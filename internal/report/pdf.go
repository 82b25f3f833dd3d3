package report

// pdf.go — catalog report rendered with go-pdf/fpdf on landscape A4.
// Layout mirrors the list report: centered title block, generation metadata,
// bordered seven-column table with zebra rows, footer.

import (
	"bytes"
	"fmt"
	"time"

	"github.com/joselitopapi14/crud-fenix-tarea/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerarPDF renders productos (already ordered by nombre) into a PDF
// document and returns its bytes.
func GenerarPDF(productos []model.Producto, generadoEn time.Time) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentW, 9, tr("Reporte de Productos"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(contentW, 6, "CRUD Fenix - Inventario Completo", "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(51, 51, 51)
	pdf.Line(10, pdf.GetY()+2, pageW-10, pdf.GetY()+2)
	pdf.Ln(6)

	// ── Metadata ─────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, tr(fmt.Sprintf("Fecha de generación: %s", generadoEn.Format("02/01/2006 15:04:05"))), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Total de productos: %d", len(productos)), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	// Column widths sum to the content width (277mm)
	widths := []float64{30, 55, 42, 30, 24, 24, 72}
	headers := []string{"Código", "Nombre", "Presentación", "Marca", "Costo", "Venta", "Observaciones"}
	aligns := []string{"L", "L", "L", "L", "R", "R", "L"}

	// ── Table header ─────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetDrawColor(221, 221, 221)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, tr(h), "1", 0, aligns[i], true, 0, "")
	}
	pdf.Ln(-1)

	// ── Rows ─────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 7.5)
	for i, p := range productos {
		fill := i%2 == 1
		pdf.SetFillColor(249, 249, 249)

		cells := []string{
			p.Codigo,
			p.Nombre,
			Presentacion(p),
			oGuion(p.Marca),
			FormatearPesos(p.ValorCosto),
			FormatearPesos(p.ValorVenta),
			oGuion(p.Observaciones),
		}
		for j, cell := range cells {
			pdf.CellFormat(widths[j], 6, tr(truncar(cell, maxChars(widths[j]))), "1", 0, aligns[j], fill, 0, "")
		}
		pdf.Ln(-1)
	}

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(153, 153, 153)
	pdf.CellFormat(contentW, 4, tr("Documento generado automáticamente por CRUD Fenix"), "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 4, generadoEn.Format("02/01/2006 15:04:05"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render: %w", err)
	}
	return buf.Bytes(), nil
}

// maxChars approximates how many characters fit a column at the row font size.
func maxChars(width float64) int { return int(width / 1.6) }

func truncar(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
