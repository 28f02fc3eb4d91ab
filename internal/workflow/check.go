package workflow

import (
	"context"
	"strings"

	"github.com/jackzampolin/draftcheck/internal/api"
)

// CheckStep names one collaborator call made by a check.
type CheckStep string

const (
	StepAssignment CheckStep = "ensure-assignment"
	StepDraft      CheckStep = "create-draft"
	StepAnalysis   CheckStep = "analysis"
)

// Status lines shown while each step runs.
var stepStatus = map[CheckStep]string{
	StepAssignment: "Preparing your workspace…",
	StepDraft:      "Saving your draft…",
	StepAnalysis:   "Analysing with AI…",
}

// checkRequest is the input captured when a check starts.
type checkRequest struct {
	Content    string
	Reflection string
	Language   api.Language
}

// checkOutcome is what a check ended with. DraftID is set once a draft
// was created, even if the analysis then failed.
type checkOutcome struct {
	Result     *api.Draft
	FailedStep CheckStep
	Err        error
	DraftID    int
}

// Check saves the current text as a draft and runs the integrity analysis.
//
// Empty content is rejected locally with ErrEmptyContent. A collaborator
// failure returns the session to Editing with the server's message, or a
// generic one, in State.Error and Check returns nil. A draft created before the failure is
// left on the server.
func (s *Session) Check(ctx context.Context) error {
	var req checkRequest
	var rejected error
	var blocked error
	s.mutate(func(st *State) EventKind {
		if st.Stage != StageEditing {
			blocked = notEditing(st.Stage)
			return ""
		}
		content := st.Content()
		if strings.TrimSpace(content) == "" {
			rejected = ErrEmptyContent
			st.Error = rejected.Error()
			return EventError
		}
		req = checkRequest{
			Content:    content,
			Reflection: strings.TrimSpace(st.Reflection),
			Language:   st.Language,
		}
		st.Stage = StageChecking
		st.Error = ""
		return EventStage
	})
	if blocked != nil {
		return blocked
	}
	if rejected != nil {
		return rejected
	}

	s.logger.Info("check started", "chars", len(req.Content), "language", req.Language)
	out := s.runCheck(ctx, req)
	if out.Err != nil {
		attrs := []any{"step", out.FailedStep, "error", out.Err}
		if out.DraftID != 0 {
			attrs = append(attrs, "orphan_draft_id", out.DraftID)
			s.logger.Warn("check failed after draft was saved", attrs...)
		} else {
			s.logger.Error("check failed", attrs...)
		}
		s.update(EventStage, func(st *State) bool {
			st.Stage = StageEditing
			st.Status = ""
			st.Error = api.UserMessage(out.Err, fallbackCheckMessage)
			return true
		})
		return nil
	}

	s.update(EventStage, func(st *State) bool {
		st.Stage = StageResult
		st.Status = ""
		st.Result = out.Result
		return true
	})
	s.logger.Info("check complete", "draft_id", out.Result.ID, "risk", riskAttr(out.Result))
	return nil
}

// runCheck performs the three collaborator calls in order, stopping at the
// first failure.
func (s *Session) runCheck(ctx context.Context, req checkRequest) checkOutcome {
	s.setStatus(StepAssignment)
	assignmentID, err := s.ensureAssignment(ctx, api.DefaultAssignmentTitle)
	if err != nil {
		return checkOutcome{FailedStep: StepAssignment, Err: err}
	}

	s.setStatus(StepDraft)
	create := api.DraftCreate{
		AssignmentID: assignmentID,
		Content:      req.Content,
		Language:     req.Language,
	}
	if req.Reflection != "" {
		reflection := req.Reflection
		create.ReflectionText = &reflection
	}
	draft, err := s.backend.CreateDraft(ctx, create)
	if err != nil {
		return checkOutcome{FailedStep: StepDraft, Err: err}
	}

	s.setStatus(StepAnalysis)
	result, err := s.backend.RunIntegrityCheck(ctx, draft.ID, req.Language)
	if err != nil {
		return checkOutcome{FailedStep: StepAnalysis, Err: err, DraftID: draft.ID}
	}
	return checkOutcome{Result: &result, DraftID: draft.ID}
}

func (s *Session) setStatus(step CheckStep) {
	msg := stepStatus[step]
	s.update(EventStatus, func(st *State) bool {
		if st.Stage != StageChecking || st.Status == msg {
			return false
		}
		st.Status = msg
		return true
	})
}

func riskAttr(d *api.Draft) string {
	if d.RiskLevel == nil {
		return ""
	}
	return string(*d.RiskLevel)
}
