package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sadopc/dayflow/internal/state"
)

func isoTime(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}

// TasksCSV renders the fixed-column task projection.
func TasksCSV(st state.AppState) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{
		"id", "title", "status", "plannedDate", "plannedStart",
		"estimateMin", "tags", "notes", "createdAt", "updatedAt",
	}); err != nil {
		return nil, err
	}

	for _, t := range st.Tasks {
		estimate := ""
		if t.EstimateMin != nil {
			estimate = fmt.Sprintf("%d", *t.EstimateMin)
		}
		row := []string{
			t.ID,
			t.Title,
			string(t.Status),
			t.PlannedDate,
			t.PlannedStart,
			estimate,
			strings.Join(t.Tags, " "),
			t.Notes,
			isoTime(t.CreatedAt),
			isoTime(t.UpdatedAt),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TimeLogsCSV renders the fixed-column time-log projection.
func TimeLogsCSV(st state.AppState) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"id", "taskId", "minutes", "startedAt", "endedAt", "note"}); err != nil {
		return nil, err
	}

	for _, l := range st.TimeLogs {
		row := []string{
			l.ID,
			l.TaskID,
			fmt.Sprintf("%d", l.Minutes),
			isoTime(l.StartedAt),
			isoTime(l.EndedAt),
			l.Note,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTasksCSV writes the task projection to path.
func WriteTasksCSV(st state.AppState, path string) error {
	data, err := TasksCSV(st)
	if err != nil {
		return fmt.Errorf("render tasks csv: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write csv file: %w", err)
	}
	return nil
}

// WriteTimeLogsCSV writes the time-log projection to path.
func WriteTimeLogsCSV(st state.AppState, path string) error {
	data, err := TimeLogsCSV(st)
	if err != nil {
		return fmt.Errorf("render time logs csv: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write csv file: %w", err)
	}
	return nil
}
