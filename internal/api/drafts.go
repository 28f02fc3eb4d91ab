package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// DefaultAssignmentTitle is used when the caller does not name the assignment.
const DefaultAssignmentTitle = "Untitled Assignment"

// CreateAssignment obtains a new assignment container for drafts.
func (c *Client) CreateAssignment(ctx context.Context, title string) (Assignment, error) {
	if title == "" {
		title = DefaultAssignmentTitle
	}
	var a Assignment
	if err := c.Post(ctx, "/api/assignments/", map[string]string{"title": title}, &a); err != nil {
		return Assignment{}, fmt.Errorf("create assignment: %w", err)
	}
	return a, nil
}

// ListAssignments returns the caller's assignments.
func (c *Client) ListAssignments(ctx context.Context) ([]Assignment, error) {
	var out []Assignment
	if err := c.Get(ctx, "/api/assignments/", &out); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return out, nil
}

// CreateDraft persists a draft under an assignment. Analysis fields of the
// returned draft are nil.
func (c *Client) CreateDraft(ctx context.Context, req DraftCreate) (Draft, error) {
	var d Draft
	if err := c.Post(ctx, "/api/drafts/", req, &d); err != nil {
		return Draft{}, fmt.Errorf("create draft: %w", err)
	}
	return d, nil
}

// RunIntegrityCheck submits a draft for analysis and returns it with the
// analysis fields populated. The payload is validated before decoding.
func (c *Client) RunIntegrityCheck(ctx context.Context, draftID int, lang Language) (Draft, error) {
	path := fmt.Sprintf("/api/drafts/%d/check?language=%s", draftID, url.QueryEscape(string(lang)))
	raw, err := c.do(ctx, http.MethodPost, path, nil, "")
	if err != nil {
		return Draft{}, fmt.Errorf("run integrity check: %w", err)
	}
	if err := ValidateAnalysis(raw); err != nil {
		return Draft{}, fmt.Errorf("run integrity check: %w", err)
	}
	var d Draft
	if err := decode(raw, &d); err != nil {
		return Draft{}, fmt.Errorf("run integrity check: %w", err)
	}
	return d, nil
}

// GetDraftHistory returns the caller's most recent drafts, newest first.
func (c *Client) GetDraftHistory(ctx context.Context) ([]Draft, error) {
	var out []Draft
	if err := c.Get(ctx, "/api/drafts/history/all", &out); err != nil {
		return nil, fmt.Errorf("get draft history: %w", err)
	}
	return out, nil
}

// GetDraft returns a single draft.
func (c *Client) GetDraft(ctx context.Context, id int) (Draft, error) {
	var d Draft
	if err := c.Get(ctx, fmt.Sprintf("/api/drafts/%d", id), &d); err != nil {
		return Draft{}, fmt.Errorf("get draft %d: %w", id, err)
	}
	return d, nil
}

// DraftsForAssignment returns the drafts filed under an assignment, newest first.
func (c *Client) DraftsForAssignment(ctx context.Context, assignmentID int) ([]Draft, error) {
	var out []Draft
	if err := c.Get(ctx, fmt.Sprintf("/api/drafts/assignment/%d", assignmentID), &out); err != nil {
		return nil, fmt.Errorf("list drafts for assignment %d: %w", assignmentID, err)
	}
	return out, nil
}
