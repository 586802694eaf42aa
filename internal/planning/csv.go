package planning

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
)

var csvHeader = []string{"title", "area", "class_id", "week_start", "day", "slot", "resources", "notes"}

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
}

// WriteCSV exports activities in the import format.
func WriteCSV(w io.Writer, activities []Activity) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, a := range activities {
		record := []string{
			a.Title,
			a.Area,
			a.ClassID,
			a.WeekStart.Format("2006-01-02"),
			strings.ToLower(a.Day.String()),
			a.Slot,
			a.Resources,
			a.Notes,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses the import format into activity inputs. The header row is
// required and column order is fixed.
func ReadCSV(r io.Reader) ([]NewActivity, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("planning: read csv header: %w", err)
	}
	for i, col := range csvHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), col) {
			return nil, fmt.Errorf("planning: unexpected csv column %q, want %q", header[i], col)
		}
	}

	var out []NewActivity
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("planning: read csv line %d: %w", line, err)
		}
		weekStart, err := time.Parse("2006-01-02", strings.TrimSpace(record[3]))
		if err != nil {
			return nil, fmt.Errorf("planning: line %d: week_start must be YYYY-MM-DD", line)
		}
		day, ok := weekdays[strings.ToLower(strings.TrimSpace(record[4]))]
		if !ok {
			return nil, fmt.Errorf("planning: line %d: unknown day %q", line, record[4])
		}
		out = append(out, NewActivity{
			Title:     record[0],
			Area:      record[1],
			ClassID:   record[2],
			WeekStart: weekStart,
			Day:       day,
			Slot:      strings.ToLower(strings.TrimSpace(record[5])),
			Resources: record[6],
			Notes:     record[7],
		})
	}
	return out, nil
}
