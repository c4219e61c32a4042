// Package ingest converts an uploaded spreadsheet workbook into a list of
// normalized overtime records ready for persistence. Parsing is
// all-or-nothing and never touches storage; staging and persistence are
// separate, caller-driven steps.
package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

var (
	ErrUnreadableWorkbook = errors.New("workbook could not be read")
	ErrHeaderNotFound     = errors.New(`header row with "Nombre" not found`)
	ErrInvalidFilename    = errors.New("filename does not match DIARIO_<proyecto>_<YYYYMMDD>.xlsx")
	ErrInvalidDate        = errors.New("filename date is not a valid calendar date")
	ErrDuplicateFile      = errors.New("file already loaded")
	ErrSuperseded         = errors.New("upload superseded by a newer selection")
)

// MissingColumnsError names the required header labels that were not found.
type MissingColumnsError struct {
	Labels []string
}

func (e *MissingColumnsError) Error() string {
	return "missing required columns: " + strings.Join(e.Labels, ", ")
}

// Required header labels, matched exactly within the detected header row.
const (
	labelNombre  = "Nombre"
	labelCedula  = "C.I."
	labelIngreso = "H. Ingreso"
	labelSalida  = "H. Salida"
)

// Record is one candidate overtime record extracted from a sheet row. Time
// strings pass through uncorrected; only the manual-edit path validates
// their format.
type Record struct {
	Fecha            time.Time `json:"fecha"`
	NombreTrabajador string    `json:"nombreTrabajador"`
	Cedula           string    `json:"cedula"`
	HoraIngreso      string    `json:"horaIngreso"`
	HoraSalida       string    `json:"horaSalida"`
}

// ParseResult is the outcome of a successful parse: the records in sheet
// row order plus the metadata derived from the filename.
type ParseResult struct {
	Filename    string    `json:"filename"`
	Fecha       time.Time `json:"fecha"`
	ProjectHint string    `json:"projectHint"`
	Records     []Record  `json:"records"`
}

var filenameRe = regexp.MustCompile(`^DIARIO_(.+)_([0-9]{8})(?i:\.xlsx?)$`)

// ParseFilename derives the record date and a project-name hint from an
// upload filename of the form DIARIO_<name with underscores>_<YYYYMMDD>
// with a case-insensitive .xls/.xlsx extension.
func ParseFilename(name string) (time.Time, string, error) {
	m := filenameRe.FindStringSubmatch(name)
	if m == nil {
		return time.Time{}, "", ErrInvalidFilename
	}

	digits := m[2]
	year, _ := strconv.Atoi(digits[:4])
	month, _ := strconv.Atoi(digits[4:6])
	day, _ := strconv.Atoi(digits[6:8])

	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, "", ErrInvalidDate
	}
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (Feb 30 becomes Mar 2); a round-trip
	// mismatch means the digits were not a real calendar date.
	if date.Year() != year || int(date.Month()) != month || date.Day() != day {
		return time.Time{}, "", ErrInvalidDate
	}

	hint := strings.ReplaceAll(m[1], "_", " ")
	return date, hint, nil
}

// ParseWorkbook decodes the first sheet of the uploaded workbook and
// extracts one record per valid data row. The record date comes from the
// filename.
func ParseWorkbook(data []byte, filename string) (*ParseResult, error) {
	fecha, hint, err := ParseFilename(filename)
	if err != nil {
		return nil, err
	}

	rows, err := readRows(data, filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableWorkbook, err)
	}

	headerIdx := -1
	for i, row := range rows {
		if len(row) > 1 && row[1] == labelNombre {
			headerIdx = i
			break
		}
	}
	if headerIdx == -1 {
		return nil, ErrHeaderNotFound
	}

	header := rows[headerIdx]
	cols := map[string]int{}
	var missing []string
	for _, label := range []string{labelNombre, labelCedula, labelIngreso, labelSalida} {
		idx := -1
		for j, cell := range header {
			if cell == label {
				idx = j
				break
			}
		}
		if idx == -1 {
			missing = append(missing, label)
			continue
		}
		cols[label] = idx
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Labels: missing}
	}

	maxIdx := 0
	for _, idx := range cols {
		if idx > maxIdx {
			maxIdx = idx
		}
	}

	var records []Record
	for _, row := range rows[headerIdx+1:] {
		// Truncated rows cannot hold every required column.
		if len(row) <= maxIdx {
			continue
		}
		nombre := cellValue(row, cols[labelNombre])
		cedula := cellValue(row, cols[labelCedula])
		// Blank separator rows carry no worker identity.
		if nombre == "" || cedula == "" {
			continue
		}
		records = append(records, Record{
			Fecha:            fecha,
			NombreTrabajador: nombre,
			Cedula:           cedula,
			HoraIngreso:      cellValue(row, cols[labelIngreso]),
			HoraSalida:       cellValue(row, cols[labelSalida]),
		})
	}

	return &ParseResult{
		Filename:    filename,
		Fecha:       fecha,
		ProjectHint: hint,
		Records:     records,
	}, nil
}

// readRows decodes the byte buffer into a raw grid of cell strings, taking
// the first sheet in declaration order. Legacy .xls files go through the
// xls reader; everything else through excelize.
func readRows(data []byte, filename string) ([][]string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".xls" {
		workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
		if err != nil {
			return nil, err
		}
		if workbook.NumSheets() == 0 {
			return nil, errors.New("no worksheet found")
		}
		// ReadAllCells concatenates every sheet in the workbook, so a
		// multi-sheet file would smuggle rows from later sheets into the
		// grid. Only single-sheet .xls files are accepted.
		if workbook.NumSheets() > 1 {
			return nil, errors.New("multiple worksheets found; please upload a file with a single sheet")
		}
		rows := workbook.ReadAllCells(100000)
		if len(rows) == 0 {
			return nil, errors.New("worksheet is empty")
		}
		return rows, nil
	}

	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, errors.New("no worksheet found")
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("worksheet is empty")
	}
	return rows, nil
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
