package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/draftcheck/internal/api"
	"github.com/jackzampolin/draftcheck/internal/svcctx"
	"github.com/jackzampolin/draftcheck/internal/view"
)

var draftsCmd = &cobra.Command{
	Use:   "drafts",
	Short: "Browse saved drafts and reports",
}

var draftsHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List your most recent drafts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		drafts, err := svcctx.ClientFrom(ctx).GetDraftHistory(ctx)
		if err != nil {
			return err
		}
		return api.Output(view.History(drafts))
	},
}

var draftsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show the report for a draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		d, err := svcctx.ClientFrom(ctx).GetDraft(ctx, id)
		if err != nil {
			return err
		}
		if !d.Analyzed() && !api.IsStructuredOutput() {
			fmt.Fprintf(cmd.OutOrStdout(), "Draft #%d has not been checked yet.\n", d.ID)
			return nil
		}
		return api.Output(view.Result(d))
	},
}

var draftsAssignmentCmd = &cobra.Command{
	Use:   "assignment <id>",
	Short: "List the drafts filed under an assignment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		drafts, err := svcctx.ClientFrom(ctx).DraftsForAssignment(ctx, id)
		if err != nil {
			return err
		}
		return api.Output(view.History(drafts))
	},
}

var draftsSavedCmd = &cobra.Command{
	Use:   "saved [id]",
	Short: "List reports saved locally, or show one",
	Long: `Without an id, lists the drafts whose reports were saved by "draftcheck check".
With an id, prints that saved report without contacting the server.`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{offline: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		h := svcctx.HomeFrom(cmd.Context())
		if len(args) == 0 {
			ids, err := h.ResultIDs()
			if err != nil {
				return err
			}
			if api.IsStructuredOutput() {
				return api.Output(ids)
			}
			if len(ids) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved reports.")
				return nil
			}
			for _, id := range ids {
				fmt.Fprintf(cmd.OutOrStdout(), "#%d\t%s\n", id, h.ResultPath(id))
			}
			return nil
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		d, err := loadResult(h, id)
		if err != nil {
			return err
		}
		return api.Output(view.Result(d))
	},
}

var assignmentsCmd = &cobra.Command{
	Use:   "assignments",
	Short: "Browse assignments",
}

var assignmentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your assignments",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out, err := svcctx.ClientFrom(ctx).ListAssignments(ctx)
		if err != nil {
			return err
		}
		return api.Output(view.Assignments(out))
	},
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func init() {
	draftsCmd.AddCommand(draftsHistoryCmd, draftsGetCmd, draftsAssignmentCmd, draftsSavedCmd)
	assignmentsCmd.AddCommand(assignmentsListCmd)
	rootCmd.AddCommand(draftsCmd, assignmentsCmd)
}
