// Package ingest inspects local documents before they are uploaded for
// text extraction.
package ingest

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	dcapi "github.com/jackzampolin/draftcheck/internal/api"
)

// MaxUploadSize is the largest file the extraction service accepts.
const MaxUploadSize = 10 * 1024 * 1024

// Document types accepted for upload, keyed by file extension.
const (
	TypePDF  = "pdf"
	TypePPT  = "ppt"
	TypePPTX = "pptx"
	TypeTXT  = "txt"
)

// expectedMIME lists the sniffed MIME types each extension should produce.
// Legacy .ppt files sniff as generic OLE containers.
var expectedMIME = map[string][]string{
	TypePDF:  {"application/pdf"},
	TypePPT:  {"application/vnd.ms-powerpoint", "application/x-ole-storage"},
	TypePPTX: {"application/vnd.openxmlformats-officedocument.presentationml.presentation", "application/zip"},
	TypeTXT:  {"text/plain"},
}

// TypeOf returns the accepted document type for a filename, or "" when the
// extension is not accepted.
func TypeOf(name string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if _, ok := expectedMIME[ext]; ok {
		return ext
	}
	return ""
}

// Accepted reports whether name has an accepted extension.
func Accepted(name string) bool {
	return TypeOf(name) != ""
}

// Document is a local file ready to be uploaded.
type Document struct {
	Path string
	Name string
	Size int64
	Type string
	MIME string
	// Pages is the locally counted page count for PDFs, 0 when unknown.
	Pages int
	// Warnings are non-fatal observations about the file.
	Warnings []string
}

// Inspect stats and sniffs a local file. It rejects only files it cannot
// read; size and type limits are enforced by the workflow before upload.
func Inspect(path string, logger *slog.Logger) (*Document, error) {
	if logger == nil {
		logger = slog.Default()
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("document not found: %s", path)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	doc := &Document{
		Path: path,
		Name: filepath.Base(path),
		Size: info.Size(),
		Type: TypeOf(path),
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", doc.Name, err)
	}
	doc.MIME = mt.String()

	if doc.Type != "" && doc.Size > 0 && !mimeMatches(mt, expectedMIME[doc.Type]) {
		doc.Warnings = append(doc.Warnings,
			fmt.Sprintf("%s does not look like a %s file (detected %s)", doc.Name, strings.ToUpper(doc.Type), mt.String()))
	}

	if doc.Type == TypePDF && mt.Is("application/pdf") && doc.Size <= MaxUploadSize {
		pages, err := countPages(path)
		if err != nil {
			logger.Debug("local page count failed", "file", doc.Name, "error", err)
			doc.Warnings = append(doc.Warnings, "could not read the PDF locally; the server may still extract it")
		} else {
			doc.Pages = pages
		}
	}

	logger.Debug("inspected document",
		"file", doc.Name, "size", doc.Size, "type", doc.Type, "mime", doc.MIME, "pages", doc.Pages)

	return doc, nil
}

// File returns the upload descriptor for the document.
func (d *Document) File() dcapi.File {
	path := d.Path
	return dcapi.File{
		Name:        d.Name,
		Size:        d.Size,
		ContentType: contentType(d),
		Pages:       d.Pages,
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}

func contentType(d *Document) string {
	if d.Type == TypeTXT {
		return "text/plain"
	}
	if d.MIME != "" {
		return strings.Split(d.MIME, ";")[0]
	}
	return "application/octet-stream"
}

func mimeMatches(mt *mimetype.MIME, want []string) bool {
	for _, w := range want {
		if mt.Is(w) {
			return true
		}
	}
	return false
}

func countPages(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	n, err := api.PageCount(f, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to get page count: %w", err)
	}
	return n, nil
}

var numericSuffix = regexp.MustCompile(`[-_ ]\d+$`)

// DeriveTitle turns a filename into an assignment title, dropping the
// extension and a trailing part number like "-2".
func DeriveTitle(name string) string {
	base := filepath.Base(name)
	title := strings.TrimSuffix(base, filepath.Ext(base))
	title = numericSuffix.ReplaceAllString(title, "")
	title = strings.TrimSpace(strings.NewReplacer("_", " ", "-", " ").Replace(title))
	if title == "" {
		return dcapi.DefaultAssignmentTitle
	}
	return title
}
