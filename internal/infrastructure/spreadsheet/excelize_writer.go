// Package spreadsheet genera la versión XLSX de los reportes con excelize.
package spreadsheet

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/proman-api/internal/application/reports"
)

// Excel limita el nombre de hoja a 31 caracteres.
const maxSheetName = 31

// ExcelizeWriter implementa reports.SpreadsheetWriter.
type ExcelizeWriter struct{}

var _ reports.SpreadsheetWriter = (*ExcelizeWriter)(nil)

// NewExcelizeWriter construye el writer.
func NewExcelizeWriter() *ExcelizeWriter { return &ExcelizeWriter{} }

// WriteXLSX escribe cabecera en negrita en la fila 1 y una fila por registro.
// Las celdas se escriben como texto para conservar los importes con 2 decimales.
func (w *ExcelizeWriter) WriteXLSX(t reports.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(t.Title)
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja: %w", err)
	}
	f.SetActiveSheet(index)
	if sheet != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, fmt.Errorf("xlsx: borrar hoja por defecto: %w", err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	for i, h := range t.Header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellStr(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("xlsx: cabecera %s: %w", cell, err)
		}
	}
	if len(t.Header) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(t.Header), 1)
		if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
			return nil, fmt.Errorf("xlsx: estilo cabecera: %w", err)
		}
	}

	for r, row := range t.Rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellStr(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("xlsx: celda %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func sheetName(title string) string {
	if title == "" {
		return "Sheet1"
	}
	r := []rune(title)
	if len(r) > maxSheetName {
		r = r[:maxSheetName]
	}
	return string(r)
}
