package upload

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// DefaultMaxMemory caps how much of the multipart body is buffered in RAM
// before spilling to disk — same default the net/http examples use.
const DefaultMaxMemory int64 = 32 << 20 // 32 MB

// sniffLen is how many leading bytes http.DetectContentType looks at.
const sniffLen = 512

// Limits configures multipart intake for one request.
type Limits struct {
	// TmpDir receives the materialized files. Empty means os.TempDir().
	TmpDir string

	// MaxFileBytes is the per-file ceiling. Files larger than this are
	// recorded with the FormSize error code and never written to disk.
	// Zero means unlimited.
	MaxFileBytes int64

	// MaxMemory is passed to ParseMultipartForm. Zero means DefaultMaxMemory.
	MaxMemory int64
}

func (l Limits) tmpDir() string {
	if l.TmpDir == "" {
		return os.TempDir()
	}
	return l.TmpDir
}

func (l Limits) maxMemory() int64 {
	if l.MaxMemory <= 0 {
		return DefaultMaxMemory
	}
	return l.MaxMemory
}

// FromRequest parses the request's multipart form and builds the
// per-request upload table. One descriptor is produced per file field;
// when a field carries several files only the first is kept, matching
// single-input form semantics.
//
// Intake failures never abort the request — they are folded into each
// field's descriptor as an error code, exactly the way the platform's
// upload table reports them. Only a non-multipart or unreadable body
// returns an error.
func FromRequest(r *http.Request, limits Limits) (Map, error) {
	if err := r.ParseMultipartForm(limits.maxMemory()); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return Map{}, nil
		}
		return nil, err
	}
	if r.MultipartForm == nil {
		return Map{}, nil
	}

	m := make(Map, len(r.MultipartForm.File))
	for field, headers := range r.MultipartForm.File {
		if len(headers) == 0 {
			continue
		}
		m[field] = materialize(headers[0], limits)
	}
	return m, nil
}

// materialize copies one multipart part to a temporary file and records
// the outcome as a descriptor.
func materialize(fh *multipart.FileHeader, limits Limits) *Descriptor {
	d := &Descriptor{
		ClientName: fh.Filename,
		Type:       fh.Header.Get("Content-Type"),
	}

	// A file input submitted empty arrives as a part with no filename.
	if fh.Filename == "" && fh.Size == 0 {
		d.Error = NoFile
		return d
	}

	if limits.MaxFileBytes > 0 && fh.Size > limits.MaxFileBytes {
		d.Error = FormSize
		return d
	}

	src, err := fh.Open()
	if err != nil {
		d.Error = CantWrite
		return d
	}
	defer src.Close()

	if err := os.MkdirAll(limits.tmpDir(), 0o755); err != nil {
		d.Error = NoTmpDir
		return d
	}

	dstPath := filepath.Join(limits.tmpDir(), "upload-"+uuid.NewString())
	dst, err := os.Create(dstPath)
	if err != nil {
		d.Error = CantWrite
		return d
	}
	defer dst.Close()

	n, err := io.Copy(dst, src)
	if err != nil {
		_ = os.Remove(dstPath)
		if errors.Is(err, io.ErrUnexpectedEOF) {
			d.Error = Partial
		} else {
			d.Error = CantWrite
		}
		return d
	}

	d.Error = OK
	d.Size = n
	d.TmpPath = dstPath
	if d.Type == "" {
		d.Type = sniffType(dstPath)
	}
	return d
}

// sniffType detects the MIME type from the file's leading bytes.
// Used only when the client did not declare one.
func sniffType(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return "application/octet-stream"
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	n, _ := io.ReadFull(f, buf)
	return http.DetectContentType(buf[:n])
}
