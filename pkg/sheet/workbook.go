package sheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// RawSheet is one tab of the source workbook as an untyped grid of cell
// strings. It is consumed once by the header locator and field mapper.
type RawSheet struct {
	Name string
	Rows [][]string
}

var (
	ErrEmptyWorkbook       = errors.New("workbook contains no sheets")
	ErrMissingBookingSheet = errors.New("booking sheet not found in workbook")
)

var (
	zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	bomUTF8  = []byte{0xEF, 0xBB, 0xBF}
)

// ReadWorkbook parses workbook bytes into raw sheets. The format is
// sniffed from the leading magic bytes: zip container means xlsx, an OLE
// compound file means legacy xls, anything else is treated as CSV.
func ReadWorkbook(data []byte) ([]RawSheet, error) {
	switch {
	case bytes.HasPrefix(data, zipMagic):
		return readXLSX(data)
	case bytes.HasPrefix(data, oleMagic):
		return readXLS(data)
	default:
		return readCSV(data)
	}
}

func readXLSX(data []byte) ([]RawSheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	var sheets []RawSheet
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
		}
		sheets = append(sheets, RawSheet{Name: name, Rows: rows})
	}
	if len(sheets) == 0 {
		return nil, ErrEmptyWorkbook
	}
	return sheets, nil
}

func readXLS(data []byte) ([]RawSheet, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open xls: %w", err)
	}

	var sheets []RawSheet
	for i := 0; i < wb.NumSheets(); i++ {
		ws := wb.GetSheet(i)
		if ws == nil {
			continue
		}
		var rows [][]string
		for r := 0; r <= int(ws.MaxRow); r++ {
			row := ws.Row(r)
			if row == nil {
				rows = append(rows, nil)
				continue
			}
			var cells []string
			for c := 0; c <= row.LastCol(); c++ {
				cells = append(cells, row.Col(c))
			}
			rows = append(rows, cells)
		}
		sheets = append(sheets, RawSheet{Name: ws.Name, Rows: rows})
	}
	if len(sheets) == 0 {
		return nil, ErrEmptyWorkbook
	}
	return sheets, nil
}

// readCSV treats the whole input as a single booking sheet. Exports from
// older office machines arrive in UTF-16 or the Vietnamese Windows-1258
// codepage, so the bytes are decoded before parsing.
func readCSV(data []byte) ([]RawSheet, error) {
	decoded, err := decodeText(data)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(bytes.NewReader(decoded))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse csv: %w", err)
		}
		rows = append(rows, rec)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyWorkbook
	}
	return []RawSheet{{Name: "bookings", Rows: rows}}, nil
}

// decodeText converts raw CSV bytes to UTF-8. A UTF-16 BOM selects the
// UTF-16 decoder; valid UTF-8 passes through; anything else is assumed to
// be Windows-1258.
func decodeText(data []byte) ([]byte, error) {
	if bytes.HasPrefix(data, bomUTF8) {
		return data[3:], nil
	}
	if len(data) >= 2 && (data[0] == 0xFF && data[1] == 0xFE || data[0] == 0xFE && data[1] == 0xFF) {
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		out, _, err := transform.Bytes(dec, data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode utf-16 input: %w", err)
		}
		return out, nil
	}
	if utf8.Valid(data) {
		return data, nil
	}
	out, _, err := transform.Bytes(charmap.Windows1258.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode windows-1258 input: %w", err)
	}
	return out, nil
}
