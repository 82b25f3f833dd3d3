package report

// excel.go — catalog report rendered with excelize. Title block with the
// company branding, optional embedded logo, styled header row, one row per
// product, auto-sized columns.

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joselitopapi14/crud-fenix-tarea/internal/model"

	"github.com/xuri/excelize/v2"
)

const hojaProductos = "Productos"

// GenerarExcel renders productos (already ordered by nombre) into an XLSX
// workbook and returns its bytes. logoPath is embedded at A1 when the file
// exists; an empty or missing path just skips the logo.
func GenerarExcel(productos []model.Producto, generadoEn time.Time, logoPath string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", hojaProductos)

	// ── Title block (rows 1-3, merged B..I) ─────────────────────────────────
	tituloStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14, Color: "FF6B35"},
	})
	subtituloStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
	})
	fechaStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 10, Color: "666666"},
	})

	f.SetCellValue(hojaProductos, "B1", "Fenix BG S.A.S - I+D+I TIC")
	f.SetCellValue(hojaProductos, "B2", "Reporte de Productos - Sistema de Gestión de Inventario")
	f.SetCellValue(hojaProductos, "B3", "Fecha: "+generadoEn.Format("02/01/2006 15:04:05"))

	f.MergeCell(hojaProductos, "B1", "I1")
	f.MergeCell(hojaProductos, "B2", "I2")
	f.MergeCell(hojaProductos, "B3", "I3")

	f.SetCellStyle(hojaProductos, "B1", "I1", tituloStyle)
	f.SetCellStyle(hojaProductos, "B2", "I2", subtituloStyle)
	f.SetCellStyle(hojaProductos, "B3", "I3", fechaStyle)

	f.SetRowHeight(hojaProductos, 1, 40)
	f.SetRowHeight(hojaProductos, 2, 20)
	f.SetRowHeight(hojaProductos, 3, 15)

	if logoPath != "" {
		if _, err := os.Stat(logoPath); err == nil {
			if err := f.AddPicture(hojaProductos, "A1", logoPath, &excelize.GraphicOptions{
				ScaleX: 0.5, ScaleY: 0.5,
			}); err != nil {
				return nil, fmt.Errorf("excel: embed logo: %w", err)
			}
		}
	}

	// ── Header row (row 5) ──────────────────────────────────────────────────
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"F0F0F0"}, Pattern: 1},
	})

	headers := []string{
		"Código", "Nombre", "Tipo Presentación", "Valor Presentación",
		"Marca", "Costo", "Venta", "Observaciones", "Fecha Creación",
	}
	cols := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I"}

	colMaxWidth := make(map[string]float64, len(cols))
	for i, h := range headers {
		f.SetCellValue(hojaProductos, cols[i]+"5", h)
		colMaxWidth[cols[i]] = float64(len([]rune(h)))
	}
	f.SetCellStyle(hojaProductos, "A5", "I5", headerStyle)

	// ── Data rows (from row 6) ──────────────────────────────────────────────
	for i, p := range productos {
		row := strconv.Itoa(i + 6)
		values := []string{
			p.Codigo,
			p.Nombre,
			Capitalizar(p.PresentacionTipo),
			oGuion(p.PresentacionValor),
			oGuion(p.Marca),
			FormatearPesos(p.ValorCosto),
			FormatearPesos(p.ValorVenta),
			oGuion(p.Observaciones),
			fechaCorta(p.CreatedAt),
		}
		for j, v := range values {
			f.SetCellValue(hojaProductos, cols[j]+row, v)
			if w := float64(len([]rune(v))); w > colMaxWidth[cols[j]] {
				colMaxWidth[cols[j]] = w
			}
		}
	}

	// Auto-fit column widths with padding
	for col, maxW := range colMaxWidth {
		width := maxW*1.2 + 4
		if width < 8 {
			width = 8
		}
		f.SetColWidth(hojaProductos, col, col, width)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
