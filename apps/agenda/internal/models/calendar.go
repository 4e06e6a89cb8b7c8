package models

import (
	"fmt"
	"time"
)

type SourceKind string

const (
	SourceHTML SourceKind = "html"
	SourceCSV  SourceKind = "csv"
	SourceICS  SourceKind = "ics"
)

//nolint:gochecknoglobals //lookup table
var SourceKinds = []SourceKind{SourceHTML, SourceCSV, SourceICS}

func ParseSourceKind(value string) (SourceKind, error) {
	for _, kind := range SourceKinds {
		if string(kind) == value {
			return kind, nil
		}
	}
	return "", fmt.Errorf("unknown source kind: %q", value)
}

type Calendar struct {
	ID         string
	Name       string
	SourceURL  string
	SourceKind SourceKind
	Year       int
	LastImport *time.Time
}

func (cal Calendar) LastImportNice() string {
	if cal.LastImport == nil {
		return "never"
	}
	return cal.LastImport.Format("2 Jan 2006, 15:04")
}
