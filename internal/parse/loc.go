package parse

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// datetimeLayouts are tried in order for the datetime column.
var datetimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05Z07:00",
}

// ParseLOC reads a lines-of-code CSV with a header row. Columns are located
// by name, so extra or reordered columns are fine. Numeric fields that fail to
// parse become 0 and malformed dates become nil; only a broken CSV stream is
// an error.
func ParseLOC(r io.Reader) ([]LineRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	get := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []LineRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(records)+2, err)
		}

		rec := LineRecord{
			File:     get(row, "file"),
			Line:     atoi(get(row, "line")),
			Type:     get(row, "type"),
			Commit:   get(row, "commit"),
			Author:   get(row, "author"),
			Time:     get(row, "time"),
			Timezone: get(row, "timezone"),
			Depth:    atoi(get(row, "depth")),
			Length:   atoi(get(row, "length")),
		}
		rec.Date = parseDate(get(row, "date"), rec.Timezone)
		rec.Datetime = parseDatetime(get(row, "datetime"))
		records = append(records, rec)
	}
	return records, nil
}

// LoadLOC fetches and parses the log at source. Any failure is logged and
// yields an empty result so callers can render a "no data" state.
func LoadLOC(ctx context.Context, source string) []LineRecord {
	rc, err := Open(ctx, source)
	if err != nil {
		slog.Default().Warn("load loc", "source", source, "error", err)
		return nil
	}
	defer rc.Close()

	records, err := ParseLOC(rc)
	if err != nil {
		slog.Default().Warn("parse loc", "source", source, "error", err)
		return nil
	}
	return records
}

func atoi(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0
		}
		return int(f)
	}
	return n
}

func parseDate(date, tz string) *time.Time {
	if date == "" {
		return nil
	}
	if tz == "" {
		tz = "Z"
	}
	t, err := time.Parse("2006-01-02T15:04Z07:00", date+"T00:00"+tz)
	if err != nil {
		return nil
	}
	return &t
}

func parseDatetime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
