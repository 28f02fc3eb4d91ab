package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"sync"
)

// File describes a local document to send to the extraction service.
type File struct {
	Name        string
	Size        int64
	ContentType string
	// Pages is a locally counted page count, 0 when unknown. It is not sent.
	Pages int
	Open  func() (io.ReadCloser, error)
}

// ProgressFunc receives upload progress as a percentage in [0,100].
type ProgressFunc func(pct int)

// UploadFile sends a document for text extraction against a draft.
// progress may be nil; when set it is called each time the sent
// percentage changes, ending with 100 once the body has been written.
func (c *Client) UploadFile(ctx context.Context, draftID int, file File, progress ProgressFunc) (UploadResult, error) {
	body, contentType, err := multipartBody(file)
	if err != nil {
		return UploadResult{}, fmt.Errorf("upload %s: %w", file.Name, err)
	}

	var reader io.Reader = body
	if progress != nil {
		reader = &progressReader{r: body, total: int64(body.Len()), fn: progress, last: -1}
	}

	path := fmt.Sprintf("/api/files/upload/%d", draftID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return UploadResult{}, fmt.Errorf("upload %s: failed to create request: %w", file.Name, err)
	}
	req.ContentLength = int64(body.Len())
	req.Header.Set("Content-Type", contentType)

	raw, err := c.send(req)
	if err != nil {
		return UploadResult{}, fmt.Errorf("upload %s: %w", file.Name, err)
	}

	var out UploadResult
	if err := decode(raw, &out); err != nil {
		return UploadResult{}, fmt.Errorf("upload %s: %w", file.Name, err)
	}
	return out, nil
}

func multipartBody(file File) (*bytes.Buffer, string, error) {
	if file.Open == nil {
		return nil, "", fmt.Errorf("no content source")
	}
	src, err := file.Open()
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, file.Name))
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form part: %w", err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize form: %w", err)
	}
	return buf, mw.FormDataContentType(), nil
}

// progressReader reports how much of the request body has been consumed by
// the transport. Read runs on the transport's goroutine.
type progressReader struct {
	mu    sync.Mutex
	r     io.Reader
	total int64
	read  int64
	last  int
	fn    ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)

	p.mu.Lock()
	p.read += int64(n)
	pct := 100
	if p.total > 0 {
		pct = int((p.read*100 + p.total/2) / p.total)
	}
	changed := pct != p.last
	p.last = pct
	p.mu.Unlock()

	if changed {
		p.fn(pct)
	}
	return n, err
}
