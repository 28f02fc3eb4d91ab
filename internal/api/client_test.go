package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	opts = append([]Option{WithReadRetries(3, time.Millisecond)}, opts...)
	return NewClient(srv.URL+"/", opts...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClientHeaders(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, err := uuid.Parse(r.Header.Get(RequestIDHeader))
		assert.NoError(t, err, "request id should be a UUID")
		writeJSON(w, http.StatusOK, []Assignment{{ID: 1, Title: "Essay", CreatedAt: Timestamp{}}})
	}, WithToken("tok"))

	out, err := c.ListAssignments(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Essay", out[0].Title)
}

func TestCreateAssignment(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/assignments/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, DefaultAssignmentTitle, body["title"])
		io.WriteString(w, `{"id": 5, "user_id": 2, "title": "Untitled Assignment", "created_at": "2025-03-01T10:00:00.123456"}`)
	})

	a, err := c.CreateAssignment(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 5, a.ID)
	assert.Equal(t, 2025, a.CreatedAt.Year())
	assert.Equal(t, time.March, a.CreatedAt.Month())
}

func TestCreateDraft(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/drafts/", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(3), body["assignment_id"])
		assert.Equal(t, "text", body["content"])
		assert.Equal(t, "hi", body["language"])
		_, hasReflection := body["reflection_text"]
		assert.False(t, hasReflection, "empty reflection must be omitted")
		io.WriteString(w, `{"id": 9, "assignment_id": 3, "content": "text", "similarity_score": null, "risk_level": null, "created_at": "2025-03-01T10:00:00Z"}`)
	})

	d, err := c.CreateDraft(context.Background(), DraftCreate{AssignmentID: 3, Content: "text", Language: LanguageHindi})
	require.NoError(t, err)
	assert.Equal(t, 9, d.ID)
	assert.False(t, d.Analyzed())
	assert.Nil(t, d.RiskLevel)
}

func TestRunIntegrityCheck(t *testing.T) {
	t.Run("valid analysis", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/drafts/9/check", r.URL.Path)
			assert.Equal(t, "en", r.URL.Query().Get("language"))
			io.WriteString(w, `{"id": 9, "assignment_id": 3, "similarity_score": 12.5, "ai_probability": 40, "learning_score": 77.2,
				"risk_level": "Medium", "feedback": "Good", "missing_citations": "No missing citations detected"}`)
		})

		d, err := c.RunIntegrityCheck(context.Background(), 9, LanguageEnglish)
		require.NoError(t, err)
		assert.True(t, d.Analyzed())
		require.NotNil(t, d.RiskLevel)
		assert.Equal(t, RiskMedium, *d.RiskLevel)
		assert.InDelta(t, 77.2, *d.LearningScore, 0.001)
	})

	t.Run("out of range score is rejected", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"id": 9, "assignment_id": 3, "similarity_score": 140}`)
		})
		_, err := c.RunIntegrityCheck(context.Background(), 9, LanguageEnglish)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "schema")
	})

	t.Run("unknown risk level is rejected", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"id": 9, "assignment_id": 3, "risk_level": "Extreme"}`)
		})
		_, err := c.RunIntegrityCheck(context.Background(), 9, LanguageEnglish)
		require.Error(t, err)
	})

	t.Run("server failure is not retried", func(t *testing.T) {
		var calls atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			writeJSON(w, http.StatusBadGateway, map[string]string{"detail": "analysis service unavailable"})
		})
		_, err := c.RunIntegrityCheck(context.Background(), 9, LanguageEnglish)
		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadGateway, apiErr.Status)
		assert.Equal(t, "analysis service unavailable", UserMessage(err, "fallback"))
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestGetRetries(t *testing.T) {
	t.Run("5xx then success", func(t *testing.T) {
		var calls atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/drafts/history/all", r.URL.Path)
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			io.WriteString(w, `[{"id": 2, "assignment_id": 1}, {"id": 1, "assignment_id": 1}]`)
		})

		drafts, err := c.GetDraftHistory(context.Background())
		require.NoError(t, err)
		assert.Len(t, drafts, 2)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("4xx is final", func(t *testing.T) {
		var calls atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Draft not found"})
		})

		_, err := c.GetDraft(context.Background(), 77)
		require.Error(t, err)
		assert.Equal(t, "Draft not found", UserMessage(err, "fallback"))
		assert.Contains(t, err.Error(), "get draft 77")
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("bad json is final", func(t *testing.T) {
		var calls atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			io.WriteString(w, `not json`)
		})

		_, err := c.DraftsForAssignment(context.Background(), 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode response")
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("cancelled context stops retries", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			cancel()
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := c.GetDraftHistory(ctx)
		require.Error(t, err)
	})
}

func TestUploadFile(t *testing.T) {
	content := strings.Repeat("Page 1:\nhello world\n", 2000)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/files/upload/11", r.URL.Path)
		mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		require.NoError(t, err)
		assert.Equal(t, "multipart/form-data", mediaType)

		mr := multipart.NewReader(r.Body, params["boundary"])
		part, err := mr.NextPart()
		require.NoError(t, err)
		assert.Equal(t, "file", part.FormName())
		assert.Equal(t, "notes.txt", part.FileName())
		assert.Equal(t, "text/plain", part.Header.Get("Content-Type"))
		got, err := io.ReadAll(part)
		require.NoError(t, err)
		assert.Equal(t, content, string(got))

		writeJSON(w, http.StatusOK, UploadResult{ID: 1, DraftID: 11, Filename: "notes.txt", FileType: "txt", ExtractedText: "hello"})
	})

	var mu sync.Mutex
	var seen []int
	file := File{
		Name:        "notes.txt",
		Size:        int64(len(content)),
		ContentType: "text/plain",
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
	res, err := c.UploadFile(context.Background(), 11, file, func(pct int) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, pct)
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", res.ExtractedText)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, seen)
	assert.Equal(t, 100, seen[len(seen)-1])
	for i := 1; i < len(seen); i++ {
		assert.Greater(t, seen[i], seen[i-1], "progress must increase")
	}
}

func TestUploadFileErrors(t *testing.T) {
	t.Run("open failure", func(t *testing.T) {
		c := NewClient("http://127.0.0.1:0")
		_, err := c.UploadFile(context.Background(), 1, File{
			Name: "a.pdf",
			Open: func() (io.ReadCloser, error) { return nil, errors.New("permission denied") },
		}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "permission denied")
	})

	t.Run("validation detail list", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			io.Copy(io.Discard, r.Body)
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"detail": []map[string]string{{"msg": "field required"}, {"msg": "bad file"}},
			})
		})
		_, err := c.UploadFile(context.Background(), 1, File{
			Name: "a.txt",
			Open: func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader("x")), nil },
		}, nil)
		assert.Equal(t, "field required; bad file", UserMessage(err, "fallback"))
	})
}

func TestUserMessageFallback(t *testing.T) {
	assert.Equal(t, "fallback", UserMessage(errors.New("dial tcp: refused"), "fallback"))
	assert.Equal(t, "fallback", UserMessage(&Error{Status: 500}, "fallback"))
	assert.Equal(t, "fallback", UserMessage(nil, "fallback"))
}

func TestParseLanguage(t *testing.T) {
	for in, want := range map[string]Language{"en": LanguageEnglish, " HI ": LanguageHindi} {
		got, err := ParseLanguage(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseLanguage("fr")
	assert.Error(t, err)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"transport", errors.New("request failed: connection reset"), true},
		{"server error", &Error{Status: 503}, true},
		{"client error", &Error{Status: 422}, false},
		{"cancelled", fmt.Errorf("request failed: %w", context.Canceled), false},
		{"unrecoverable", retry.Unrecoverable(errors.New("failed to decode response")), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryable(tt.err))
		})
	}
}
