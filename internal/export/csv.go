// Package export builds CSV history documents in memory so concurrent
// downloads never share filesystem state.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/spec-kit/timeclock-service/internal/domain"
)

// CombinedFilename is the download name for the admin combined export.
const CombinedFilename = "admin_combined_history.csv"

// ContentType is the MIME type for CSV downloads.
const ContentType = "text/csv; charset=utf-8"

// StaffFilename derives the download name for one user's export.
func StaffFilename(username string) string {
	return fmt.Sprintf("%s_history.csv", username)
}

// ClockHistoryCSV renders events as CSV: a Timestamp,Clock Type header and
// one row per event in the order given. Timestamps are RFC3339 UTC so the
// textual form sorts the same way the history view does.
func ClockHistoryCSV(clockEvents []domain.ClockEvent) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Timestamp", "Clock Type"}); err != nil {
		return nil, err
	}
	for _, event := range clockEvents {
		record := []string{
			event.RecordedAt.UTC().Format(time.RFC3339),
			string(event.ClockType),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
