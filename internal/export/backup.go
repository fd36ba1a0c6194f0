// Package export serializes the document: whole-document JSON backups
// and flat CSV projections of tasks and time logs.
package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sadopc/dayflow/internal/state"
)

// FormatError reports a backup payload that cannot safely replace the
// current document: unparsable JSON, an empty document, or a version
// mismatch.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "invalid backup: " + e.Reason
}

// BackupJSON serializes the full document as pretty-printed JSON.
func BackupJSON(st state.AppState) ([]byte, error) {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal backup: %w", err)
	}
	return data, nil
}

// WriteBackup writes a backup file at path.
func WriteBackup(st state.AppState, path string) error {
	data, err := BackupJSON(st)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write backup file: %w", err)
	}
	return nil
}

// ImportBackup parses a backup payload into a document, default-filling
// missing keys exactly like the loader. It fails with a *FormatError
// when the payload is not valid JSON, is not an object, or carries the
// wrong version; this is the one mutation path that reports failure
// instead of no-opping, since it would otherwise overwrite a good
// document with garbage.
func ImportBackup(data []byte) (state.AppState, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return state.AppState{}, &FormatError{Reason: "not valid JSON"}
	}
	if probe == nil {
		return state.AppState{}, &FormatError{Reason: "empty document"}
	}

	var version int
	raw, ok := probe["version"]
	if !ok || json.Unmarshal(raw, &version) != nil || version != state.Version {
		return state.AppState{}, &FormatError{
			Reason: fmt.Sprintf("unsupported version (want %d)", state.Version),
		}
	}

	st, err := state.Decode(data)
	if err != nil {
		return state.AppState{}, &FormatError{Reason: "malformed document"}
	}
	return st, nil
}

// RestoreBackup parses a backup payload and replaces the store's
// document in a single commit.
func RestoreBackup(s *state.Store, data []byte) error {
	st, err := ImportBackup(data)
	if err != nil {
		return err
	}
	return s.Replace(st)
}
