// Package export writes the study data out of the app: a JSON backup that
// can be imported again, and the weekly schedule as iCalendar, PDF or XLSX.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/javiermolinar/studyplan/internal/storage"
)

// ErrEmptyBackup is returned when a backup holds no known collection.
var ErrEmptyBackup = errors.New("backup contains no data")

// Format is an export file type.
type Format string

const (
	FormatJSON Format = "json"
	FormatICS  Format = "ics"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates an export format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatICS, FormatPDF, FormatXLSX:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q (want json, ics, pdf or xlsx)", s)
}

// Backup is the JSON document written by `export json`.
type Backup struct {
	storage.Snapshot
	ExportedAt time.Time `json:"exportedAt"`
}

// WriteBackup encodes snap as indented JSON.
func WriteBackup(w io.Writer, snap storage.Snapshot, now time.Time) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Backup{Snapshot: snap, ExportedAt: now}); err != nil {
		return fmt.Errorf("encoding backup: %w", err)
	}
	return nil
}

// ReadBackup decodes a backup. Collections missing from the document stay
// nil so an import leaves them untouched.
func ReadBackup(r io.Reader) (*Backup, error) {
	var b Backup
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, fmt.Errorf("decoding backup: %w", err)
	}
	s := b.Snapshot
	if s.Subjects == nil && s.Schedules == nil && s.Tasks == nil && s.Settings == nil && s.StudyLogs == nil {
		return nil, ErrEmptyBackup
	}
	return &b, nil
}
