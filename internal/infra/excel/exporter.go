package excel

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"comanda-service/internal/domain"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const sheet = "Sheet1"

// Exporter writes reports as .xlsx files under dir and returns the URL they
// are served from.
type Exporter struct {
	dir     string
	baseURL string
}

func NewExporter(dir, baseURL string) *Exporter {
	return &Exporter{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

func (e *Exporter) Dir() string { return e.dir }

func (e *Exporter) Export(report domain.Tabular) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", errors.Wrap(err, "create export dir")
	}

	f := excelize.NewFile()
	f.SetCellValue(sheet, "A1", report.Title())
	header, rows := report.Rows()
	for col, h := range header {
		f.SetCellValue(sheet, cell(col, 3), h)
	}
	for i, row := range rows {
		for col, v := range row {
			f.SetCellValue(sheet, cell(col, i+4), v)
		}
	}

	name := uuid.New().String() + ".xlsx"
	if err := f.SaveAs(filepath.Join(e.dir, name)); err != nil {
		return "", errors.Wrap(err, "save workbook")
	}
	return e.baseURL + "/exports/" + name, nil
}

// cell converts a zero-based column and one-based row to an A1 reference.
func cell(col, row int) string {
	return excelize.ToAlphaString(col) + strconv.Itoa(row)
}
