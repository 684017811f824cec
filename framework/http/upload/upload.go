package upload

import (
	"errors"
	"os"
)

// ── Error codes ──────────────────────────────────────────────────────────────

// ErrorCode describes the outcome of a single file-field upload.
// Values mirror PHP's UPLOAD_ERR_* constants (5 is unused there too),
// so descriptors round-trip cleanly against clients that expect them.
type ErrorCode int

const (
	OK        ErrorCode = 0 // UPLOAD_ERR_OK
	IniSize   ErrorCode = 1 // UPLOAD_ERR_INI_SIZE — exceeded the server-wide limit
	FormSize  ErrorCode = 2 // UPLOAD_ERR_FORM_SIZE — exceeded the per-form limit
	Partial   ErrorCode = 3 // UPLOAD_ERR_PARTIAL — body ended mid-file
	NoFile    ErrorCode = 4 // UPLOAD_ERR_NO_FILE — field submitted without a file
	NoTmpDir  ErrorCode = 6 // UPLOAD_ERR_NO_TMP_DIR
	CantWrite ErrorCode = 7 // UPLOAD_ERR_CANT_WRITE
	Extension ErrorCode = 8 // UPLOAD_ERR_EXTENSION — rejected by an extension hook
)

func (e ErrorCode) String() string {
	switch e {
	case OK:
		return "ok"
	case IniSize:
		return "exceeds server upload limit"
	case FormSize:
		return "exceeds form upload limit"
	case Partial:
		return "partially uploaded"
	case NoFile:
		return "no file uploaded"
	case NoTmpDir:
		return "missing temporary directory"
	case CantWrite:
		return "failed to write to disk"
	case Extension:
		return "stopped by extension"
	}
	return "unknown upload error"
}

// ── Descriptor ───────────────────────────────────────────────────────────────

// Descriptor is the per-field upload record — the Go stand-in for one
// $_FILES entry. It is built once per request and must be treated as
// immutable by validation code.
type Descriptor struct {
	// Error is the upload outcome for this field.
	Error ErrorCode

	// Size is the received byte count. Zero when Error != OK.
	Size int64

	// Type is the MIME type as reported by the client, with a sniffed
	// fallback when the client sent none. Never trusted beyond validation.
	Type string

	// TmpPath is the materialized temporary file. Empty when Error != OK.
	TmpPath string

	// ClientName is the original filename sent by the browser.
	ClientName string
}

// Uploaded reports whether anything arrived for this field at all.
// A broken upload (oversize, partial, ...) still counts as uploaded;
// only NoFile does not.
func (d *Descriptor) Uploaded() bool { return d.Error != NoFile }

// Ok reports whether the upload completed without error.
func (d *Descriptor) Ok() bool { return d.Error == OK }

// ── Map ──────────────────────────────────────────────────────────────────────

// Map is the per-request upload table: field name → descriptor.
// It replaces ambient superglobal state — build it once from the request
// and hand it explicitly to whatever needs it.
type Map map[string]*Descriptor

// Get returns the descriptor for a field, or (nil, false) when the field
// was not part of the submission.
func (m Map) Get(field string) (*Descriptor, bool) {
	d, ok := m[field]
	return d, ok
}

// Has reports whether a descriptor exists for the field.
func (m Map) Has(field string) bool {
	_, ok := m[field]
	return ok
}

// Release removes every temporary file in the map. Call it when request
// handling is done; descriptors keep their metadata but their TmpPath
// no longer resolves.
func (m Map) Release() error {
	var errs []error
	for _, d := range m {
		if d.TmpPath == "" {
			continue
		}
		if err := os.Remove(d.TmpPath); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
