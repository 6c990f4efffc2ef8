package window

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// startLayout is the ISO-8601 local-naive timestamp layout used by the
// availability file. Values carry no offset and are interpreted as UTC.
const startLayout = "2006-01-02T15:04:05"

// Load reads launch windows from CSV data with a header row containing
// window_start_utc and duration_mins columns. Rows are returned in file
// order. Any malformed row aborts the whole load; there is no row skipping.
func Load(r io.Reader, logger *slog.Logger) ([]LaunchWindow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	startCol, durCol := -1, -1
	for i, name := range header {
		switch name {
		case "window_start_utc":
			startCol = i
		case "duration_mins":
			durCol = i
		}
	}
	if startCol < 0 || durCol < 0 {
		return nil, fmt.Errorf("CSV header missing required columns, got %v", header)
	}

	var windows []LaunchWindow
	for row := 1; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row %d: %w", row, err)
		}

		start, err := time.ParseInLocation(startLayout, record[startCol], time.UTC)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid window_start_utc %q: %w", row, record[startCol], err)
		}

		duration, err := strconv.Atoi(record[durCol])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid duration_mins %q: %w", row, record[durCol], err)
		}
		// Non-positive durations are passed through unchanged. The feed has
		// never been observed to contain one, so surface it without guessing
		// at a correction.
		if duration <= 0 {
			logger.Warn("non-positive window duration", "row", row, "duration_mins", duration)
		}

		windows = append(windows, LaunchWindow{
			StartUTC:     start,
			DurationMins: duration,
		})
	}

	return windows, nil
}

// LoadFile reads launch windows from the CSV file at path.
func LoadFile(path string, logger *slog.Logger) ([]LaunchWindow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening launch window file: %w", err)
	}
	defer f.Close()

	windows, err := Load(f, logger)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return windows, nil
}
