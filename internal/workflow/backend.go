//go:generate go run go.uber.org/mock/mockgen -source=backend.go -destination=mocks/mock_backend.go -package=mocks
package workflow

import (
	"context"

	"github.com/jackzampolin/draftcheck/internal/api"
)

// Backend is the set of collaborator calls the workflow makes.
// *api.Client implements it.
type Backend interface {
	CreateAssignment(ctx context.Context, title string) (api.Assignment, error)
	CreateDraft(ctx context.Context, req api.DraftCreate) (api.Draft, error)
	UploadFile(ctx context.Context, draftID int, file api.File, progress api.ProgressFunc) (api.UploadResult, error)
	RunIntegrityCheck(ctx context.Context, draftID int, lang api.Language) (api.Draft, error)
}

var _ Backend = (*api.Client)(nil)
