// Package csvseries reads price series from loosely formatted CSV files, the
// kind exported by brokers and spreadsheets: unknown separator, Italian or
// English headers, day-first dates and decimal commas.
package csvseries

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/pigro"
)

// ErrNoRows is returned when a file has no row with both a valid date and a valid value.
var ErrNoRows = errors.New("no valid rows (date + value)")

var (
	dateHeaders  = []string{"date", "data", "datetime", "giorno"}
	valueHeaders = []string{"value", "valore", "close", "prezzo", "price", "nav"}
	separators   = []rune{',', ';', '\t', '|'}
)

// dayFirstLayouts are tried in order, after ISO dates, so that 2024-01-02 is
// never read as the 1st of February.
var dayFirstLayouts = []string{
	"2006/1/2",
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"2/1/06",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
}

// ReadFile reads the series stored in the CSV file at path.
func ReadFile(path string) (*pigro.History, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	h, err := Decode(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("csv %s: %w", path, err)
	}
	return h, nil
}

// Decode reads a date/value series from r.
func Decode(r io.Reader) (*pigro.History, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	records, err := parseTable(content)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 || len(records[0]) < 2 {
		return nil, fmt.Errorf("must have at least 2 columns (date, value)")
	}

	header := records[0]
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}
	dateCol, valueCol := pickColumns(header)

	h := new(pigro.History)
	for _, record := range records[1:] {
		if dateCol >= len(record) || valueCol >= len(record) {
			continue
		}
		on, err := parseDate(record[dateCol])
		if err != nil {
			continue
		}
		v, err := parseValue(record[valueCol])
		if err != nil {
			continue
		}
		// History keeps the last value of duplicated dates.
		h.Append(on, v)
	}
	if h.Len() == 0 {
		return nil, ErrNoRows
	}
	return h, nil
}

// parseTable splits content into records, detecting the separator.
func parseTable(content []byte) ([][]string, error) {
	records, err := readAll(content, sniff(content))
	if err == nil && width(records) >= 2 {
		return records, nil
	}
	for _, sep := range []rune{';', ','} {
		if r, err := readAll(content, sep); err == nil && width(r) >= 2 {
			return r, nil
		}
	}
	if err != nil {
		// No separator produced a table, fall back on a line based split.
		return splitLines(content), nil
	}
	return splitSingleColumn(records), nil
}

// sniff returns the separator that splits the header line in the most fields.
func sniff(content []byte) rune {
	line, _, _ := bytes.Cut(content, []byte("\n"))
	best, count := ',', 0
	for _, sep := range separators {
		if n := bytes.Count(line, []byte(string(sep))); n > count {
			best, count = sep, n
		}
	}
	return best
}

func readAll(content []byte, sep rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = sep
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	return reader.ReadAll()
}

func width(records [][]string) int {
	if len(records) == 0 {
		return 0
	}
	return len(records[0])
}

// splitSingleColumn splits one column records in date and value on the first ';' or ','.
func splitSingleColumn(records [][]string) [][]string {
	sep := ","
	for _, r := range records {
		if len(r) > 0 && strings.Contains(r[0], ";") {
			sep = ";"
			break
		}
	}
	out := [][]string{{"date", "value"}}
	if len(records) == 0 {
		return out
	}
	for _, r := range records[1:] {
		if len(r) == 0 {
			continue
		}
		date, value, _ := strings.Cut(r[0], sep)
		out = append(out, []string{date, value})
	}
	return out
}

func splitLines(content []byte) [][]string {
	var records [][]string
	for _, line := range strings.Split(string(content), "\n") {
		records = append(records, []string{strings.TrimRight(line, "\r")})
	}
	return splitSingleColumn(records)
}

// pickColumns selects the date and value columns from the header names.
func pickColumns(header []string) (dateCol, valueCol int) {
	dateCol = find(header, dateHeaders, -1)
	if dateCol < 0 {
		dateCol = 0
	}
	valueCol = find(header, valueHeaders, dateCol)
	if valueCol >= 0 {
		return dateCol, valueCol
	}
	for i := range header {
		if i != dateCol {
			return dateCol, i
		}
	}
	return dateCol, len(header) - 1
}

// find returns the index of the first header in names, skipping column skip.
func find(header, names []string, skip int) int {
	for i, h := range header {
		if i == skip {
			continue
		}
		for _, name := range names {
			if strings.EqualFold(h, name) {
				return i
			}
		}
	}
	return -1
}

// parseValue cleans spaces and decimal commas before parsing. NaN and
// infinities are not prices.
func parseValue(s string) (float64, error) {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number %q", s)
	}
	return v, nil
}

// parseDate reads a date, day first when ambiguous.
func parseDate(s string) (pigro.Date, error) {
	if d, err := pigro.ParseDate(s); err == nil {
		return d, nil
	}
	s = strings.TrimSpace(s)
	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return pigro.NewDate(t.Date()), nil
		}
	}
	return pigro.Date{}, fmt.Errorf("unrecognized date %q", s)
}
