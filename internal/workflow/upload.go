package workflow

import (
	"context"
	"strings"

	"github.com/jackzampolin/draftcheck/internal/api"
	"github.com/jackzampolin/draftcheck/internal/ingest"
	"github.com/jackzampolin/draftcheck/internal/segment"
)

// uploadPlaceholder is the content of the draft created to receive an upload.
const uploadPlaceholder = "(document upload in progress)"

// Upload sends a document for text extraction and replaces the segments
// with the extracted text.
//
// Oversized and unsupported files are rejected locally: the error is
// recorded and returned, and no collaborator is called. Any other failure
// returns the session to Editing with the segments unchanged; the error is
// recorded in State.Error and Upload returns nil.
func (s *Session) Upload(ctx context.Context, file api.File) error {
	var rejected error
	switch {
	case file.Size > ingest.MaxUploadSize:
		rejected = ErrFileTooLarge
	case !ingest.Accepted(file.Name):
		rejected = ErrUnsupportedType
	}

	var blocked error
	s.mutate(func(st *State) EventKind {
		if st.Stage != StageEditing {
			blocked = notEditing(st.Stage)
			return ""
		}
		if rejected != nil {
			st.Error = rejected.Error()
			return EventError
		}
		zero := 0
		st.Stage = StageReading
		st.UploadProgress = &zero
		st.ReadingFile = file.Name
		st.ReadingPages = file.Pages
		st.Error = ""
		return EventStage
	})
	if blocked != nil {
		return blocked
	}
	if rejected != nil {
		s.logger.Warn("upload rejected", "file", file.Name, "size", file.Size, "error", rejected)
		return rejected
	}

	s.logger.Info("upload started", "file", file.Name, "size", file.Size)
	res, err := s.runUpload(ctx, file)
	if err != nil {
		s.logger.Error("upload failed", "file", file.Name, "error", err)
		s.leaveReading(func(st *State) {
			st.Error = api.UserMessage(err, fallbackUploadMessage)
		})
		return nil
	}

	if strings.TrimSpace(res.ExtractedText) == "" {
		s.logger.Warn("upload produced no text", "file", file.Name, "draft_id", res.DraftID)
		s.leaveReading(func(st *State) {
			st.Error = ErrNoExtractedText.Error()
		})
		return nil
	}

	segs := segment.Parse(res.ExtractedText)
	s.leaveReading(func(st *State) {
		st.Segments = segs
		st.Extraction = &ExtractionMeta{
			Filename:  res.Filename,
			FileType:  res.FileType,
			PageCount: res.PageCount,
			Scanned:   res.Scanned,
			Warning:   res.Warning,
		}
	})
	s.logger.Info("upload extracted", "file", res.Filename, "pages", res.PageCount, "segments", len(segs), "scanned", res.Scanned)
	return nil
}

// runUpload files a placeholder draft and streams the document to it.
func (s *Session) runUpload(ctx context.Context, file api.File) (api.UploadResult, error) {
	assignmentID, err := s.ensureAssignment(ctx, ingest.DeriveTitle(file.Name))
	if err != nil {
		return api.UploadResult{}, err
	}

	draft, err := s.backend.CreateDraft(ctx, api.DraftCreate{
		AssignmentID: assignmentID,
		Content:      uploadPlaceholder,
	})
	if err != nil {
		return api.UploadResult{}, err
	}

	stream := newProgressStream(s.applyProgress)
	defer stream.Close()
	return s.backend.UploadFile(ctx, draft.ID, file, stream.Send)
}

// applyProgress records an upload percentage. Values are clamped to
// [0,100] and never move backwards.
func (s *Session) applyProgress(pct int) {
	pct = min(max(pct, 0), 100)
	s.update(EventProgress, func(st *State) bool {
		if st.Stage != StageReading || st.UploadProgress == nil || pct <= *st.UploadProgress {
			return false
		}
		v := pct
		st.UploadProgress = &v
		return true
	})
}

// leaveReading returns to Editing after an upload, clearing the progress.
func (s *Session) leaveReading(fn func(st *State)) {
	s.update(EventStage, func(st *State) bool {
		st.Stage = StageEditing
		st.UploadProgress = nil
		st.ReadingFile = ""
		st.ReadingPages = 0
		fn(st)
		return true
	})
}
