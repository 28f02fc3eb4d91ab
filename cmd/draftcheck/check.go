package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/draftcheck/internal/api"
	"github.com/jackzampolin/draftcheck/internal/ingest"
	"github.com/jackzampolin/draftcheck/internal/progress"
	"github.com/jackzampolin/draftcheck/internal/svcctx"
	"github.com/jackzampolin/draftcheck/internal/view"
	"github.com/jackzampolin/draftcheck/internal/workflow"
)

var (
	checkFile       string
	checkTextFile   string
	checkReflection string
	checkLanguage   string
	checkTitle      string
	checkAssignment int
	checkNoSave     bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run an integrity check on a document or text",
	Long: `Run an integrity check in one step.

With --file the document is uploaded and its text extracted first; with
--text-file the text is read from a local file (or stdin with "-"). The
draft is saved under an assignment, analysed, and the report printed.

Examples:
  draftcheck check --file essay.pdf
  draftcheck check --file slides.pptx --reflection "I summarised three papers"
  cat draft.txt | draftcheck check --text-file - --language auto
  draftcheck check --file essay.pdf -o json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc := svcctx.ServicesFrom(ctx)
		logger := svc.Logger
		cfg := svc.Config.Get()

		if checkFile == "" && checkTextFile == "" {
			return errors.New("provide --file or --text-file")
		}

		assignmentID := cfg.AssignmentID
		if checkAssignment != 0 {
			assignmentID = checkAssignment
		}
		sess := workflow.New(svc.Client, workflow.Options{
			AssignmentID:    assignmentID,
			AssignmentTitle: checkTitle,
			Logger:          logger,
		})

		if !api.IsStructuredOutput() {
			rep := progress.NewReporter(lineRenderer(os.Stderr, isTerminal(os.Stderr)), progressOptions(cfg))
			rep.Attach(sess)
			defer rep.Close()
		}

		if checkFile != "" {
			doc, err := ingest.Inspect(checkFile, logger)
			if err != nil {
				return err
			}
			for _, w := range doc.Warnings {
				logger.Warn(w, "file", doc.Name)
			}
			if err := sess.Upload(ctx, doc.File()); err != nil {
				return err
			}
			if st := sess.Snapshot(); st.Error != "" {
				return errors.New(st.Error)
			} else if st.Extraction != nil && !api.IsStructuredOutput() {
				fmt.Fprint(os.Stderr, view.ExtractionBanner(*st.Extraction))
			}
		} else {
			text, err := readText(cmd.InOrStdin(), checkTextFile)
			if err != nil {
				return err
			}
			if err := sess.EditSegment(0, text); err != nil {
				return err
			}
		}

		if checkReflection != "" {
			if err := sess.SetReflection(checkReflection); err != nil {
				return err
			}
		}

		setting := cfg.Language
		if checkLanguage != "" {
			setting = checkLanguage
		}
		lang, err := resolveLanguage(setting, sess.Snapshot().Content())
		if err != nil {
			return err
		}
		if err := sess.SetLanguage(lang); err != nil {
			return err
		}

		if err := sess.Check(ctx); err != nil {
			return err
		}
		st := sess.Snapshot()
		if st.Stage != workflow.StageResult || st.Result == nil {
			return errors.New(st.Error)
		}

		if !checkNoSave {
			path, err := saveResult(svc.Home, *st.Result)
			if err != nil {
				logger.Warn("result not saved", "error", err)
			} else {
				logger.Debug("result saved", "path", path)
			}
		}
		return api.Output(view.Result(*st.Result))
	},
}

// readText reads a text file, or stdin when path is "-".
func readText(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

func init() {
	checkCmd.Flags().StringVarP(&checkFile, "file", "f", "", "document to upload (pdf, ppt, pptx, txt)")
	checkCmd.Flags().StringVar(&checkTextFile, "text-file", "", `read the draft text from a file ("-" for stdin)`)
	checkCmd.Flags().StringVarP(&checkReflection, "reflection", "r", "", "optional reflection on how the draft was written")
	checkCmd.Flags().StringVarP(&checkLanguage, "language", "l", "", "feedback language: en, hi or auto (default from config)")
	checkCmd.Flags().StringVar(&checkTitle, "title", "", "title for a new assignment (default derived from the file name)")
	checkCmd.Flags().IntVar(&checkAssignment, "assignment", 0, "file the draft under an existing assignment")
	checkCmd.Flags().BoolVar(&checkNoSave, "no-save", false, "do not keep a copy of the report in the home directory")
	checkCmd.MarkFlagsMutuallyExclusive("file", "text-file")

	rootCmd.AddCommand(checkCmd)
}
