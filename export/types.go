// Package export turns stored template bodies into printable documents.
package export

import (
	"errors"
	"time"
)

type Format string

const (
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
)

// Document is a stored template body plus the metadata printed with it.
type Document struct {
	ID        string
	Title     string
	Kind      string
	Body      string
	UpdatedAt time.Time
}

// Result contains the export output.
type Result struct {
	Data     []byte
	Filename string
	MimeType string
}

var (
	// ErrPDFDependencyMissing indicates no Chrome or Chromium binary is available.
	ErrPDFDependencyMissing = errors.New("export pdf dependency missing")
	ErrUnknownFormat        = errors.New("export unknown format")
)
