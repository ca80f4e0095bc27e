package repository

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/aebalz/vibetrack/internal/model"
)

// ErrUnsupportedFormat is returned for export formats other than csv and json.
var ErrUnsupportedFormat = errors.New("unsupported export format")

var csvHeader = []string{"ID", "Date", "Energy", "Label", "Content", "Image", "AIInsight", "CreatedAt"}

// EncodeEntries formats entries as CSV or JSON and returns the content type.
func EncodeEntries(entries []model.JournalEntry, format string) ([]byte, string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv", "":
		var buffer bytes.Buffer
		writer := csv.NewWriter(&buffer)
		if err := writer.Write(csvHeader); err != nil {
			return nil, "", err
		}
		for _, e := range entries {
			row := []string{
				e.ID,
				string(e.Date),
				strconv.Itoa(int(e.Energy)),
				e.Energy.Label(),
				e.Content,
				e.ImageURL(),
				e.Insight(),
				e.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
			}
			if err := writer.Write(row); err != nil {
				return nil, "", err
			}
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			return nil, "", err
		}
		return buffer.Bytes(), "text/csv", nil

	case "json":
		if entries == nil {
			entries = []model.JournalEntry{}
		}
		data, err := json.Marshal(entries)
		if err != nil {
			return nil, "", err
		}
		return data, "application/json", nil

	default:
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}
