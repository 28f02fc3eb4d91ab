package main

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jackzampolin/draftcheck/internal/api"
	"github.com/jackzampolin/draftcheck/internal/home"
	"github.com/jackzampolin/draftcheck/internal/workflow"
	"github.com/jackzampolin/draftcheck/internal/workflow/mocks"
)

func TestReplCheckSavesReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockBackend(ctrl)
	logger := slog.New(slog.DiscardHandler)

	sess := workflow.New(backend, workflow.Options{AssignmentID: 5, Logger: logger})
	require.NoError(t, sess.EditSegment(0, "My essay on rivers."))

	risk := api.RiskLow
	backend.EXPECT().CreateDraft(gomock.Any(), gomock.Any()).Return(api.Draft{ID: 21, AssignmentID: 5}, nil)
	backend.EXPECT().RunIntegrityCheck(gomock.Any(), 21, api.LanguageEnglish).
		Return(api.Draft{ID: 21, AssignmentID: 5, RiskLevel: &risk}, nil)

	h, err := home.New(t.TempDir())
	require.NoError(t, err)
	var out bytes.Buffer
	r := &repl{sess: sess, out: &out, logger: logger, home: h}

	require.NoError(t, r.check(context.Background()))
	assert.Contains(t, out.String(), "Integrity Results")

	ids, err := h.ResultIDs()
	require.NoError(t, err)
	assert.Equal(t, []int{21}, ids)

	saved, err := loadResult(h, 21)
	require.NoError(t, err)
	require.NotNil(t, saved.RiskLevel)
	assert.Equal(t, api.RiskLow, *saved.RiskLevel)
}

func TestReplCheckFailureSavesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockBackend(ctrl)
	logger := slog.New(slog.DiscardHandler)

	sess := workflow.New(backend, workflow.Options{AssignmentID: 5, Logger: logger})
	require.NoError(t, sess.EditSegment(0, "text"))
	backend.EXPECT().CreateDraft(gomock.Any(), gomock.Any()).Return(api.Draft{}, &api.Error{Status: 500})

	h, err := home.New(t.TempDir())
	require.NoError(t, err)
	r := &repl{sess: sess, out: &bytes.Buffer{}, logger: logger, home: h}

	require.NoError(t, r.check(context.Background()))
	ids, err := h.ResultIDs()
	require.NoError(t, err)
	assert.Empty(t, ids)
}
