package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/draftcheck/internal/api"
	"github.com/jackzampolin/draftcheck/internal/config"
	"github.com/jackzampolin/draftcheck/internal/home"
	"github.com/jackzampolin/draftcheck/internal/ingest"
	"github.com/jackzampolin/draftcheck/internal/progress"
	"github.com/jackzampolin/draftcheck/internal/svcctx"
	"github.com/jackzampolin/draftcheck/internal/view"
	"github.com/jackzampolin/draftcheck/internal/workflow"
)

const sessionHelp = `Commands:
  show               show the draft
  upload <path>      extract text from a document (pdf, ppt, pptx, txt)
  edit <n>           replace section n; end the text with a line containing only "."
  reflect            set the reflection; end with "." (an empty reflection clears it)
  lang <en|hi|auto>  choose the feedback language
  check              run the integrity check
  result             show the last report
  reset              start a new draft
  help               show this help
  quit               leave the session`

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Edit a draft interactively and check it",
	Long: `Start an interactive session.

Upload a document or type text, review and edit the extracted Page/Slide
sections, add a reflection, choose the feedback language and run the check.
The config file is watched while the session runs, so a refreshed token
is used without restarting.

` + sessionHelp,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc := svcctx.ServicesFrom(ctx)
		logger := svc.Logger
		cfg := svc.Config.Get()

		backend := &reloadingBackend{client: svc.Client}
		svc.Config.OnChange(func(c *config.Config) {
			backend.swap(newClient(c, logger))
			logger.Debug("api client rebuilt", "server_url", c.ServerURL)
		})
		svc.Config.WatchConfig()

		lang, err := resolveLanguage(cfg.Language, "")
		if err != nil {
			return err
		}
		sess := workflow.New(backend, workflow.Options{
			Language:     lang,
			AssignmentID: cfg.AssignmentID,
			Logger:       logger,
		})

		out := cmd.OutOrStdout()
		rep := progress.NewReporter(lineRenderer(os.Stderr, isTerminal(os.Stderr)), progressOptions(cfg))
		rep.Attach(sess)
		defer rep.Close()

		r := &repl{
			sess:   sess,
			out:    out,
			logger: logger,
			lines:  readLines(ctx, cmd.InOrStdin()),
			home:   svc.Home,
			auto:   strings.EqualFold(cfg.Language, "auto"),
		}
		fmt.Fprintf(out, "draftcheck session %s\n%s\n\n", sess.ID(), sessionHelp)
		r.show()
		return r.run(ctx)
	},
}

// reloadingBackend forwards to the current client, which is replaced when
// the config file changes.
type reloadingBackend struct {
	mu     sync.RWMutex
	client *api.Client
}

var _ workflow.Backend = (*reloadingBackend)(nil)

func (b *reloadingBackend) swap(c *api.Client) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.client = c
}

func (b *reloadingBackend) current() *api.Client {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.client
}

func (b *reloadingBackend) CreateAssignment(ctx context.Context, title string) (api.Assignment, error) {
	return b.current().CreateAssignment(ctx, title)
}

func (b *reloadingBackend) CreateDraft(ctx context.Context, req api.DraftCreate) (api.Draft, error) {
	return b.current().CreateDraft(ctx, req)
}

func (b *reloadingBackend) UploadFile(ctx context.Context, draftID int, file api.File, fn api.ProgressFunc) (api.UploadResult, error) {
	return b.current().UploadFile(ctx, draftID, file, fn)
}

func (b *reloadingBackend) RunIntegrityCheck(ctx context.Context, draftID int, lang api.Language) (api.Draft, error) {
	return b.current().RunIntegrityCheck(ctx, draftID, lang)
}

// readLines delivers input lines until EOF or ctx is done.
func readLines(ctx context.Context, in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

type repl struct {
	sess   *workflow.Session
	out    io.Writer
	logger *slog.Logger
	lines  <-chan string
	// home receives a copy of every report; nil disables saving.
	home *home.Dir
	// auto re-detects the language from the text before each check.
	auto bool
}

var errQuit = errors.New("quit")

func (r *repl) run(ctx context.Context) error {
	for {
		fmt.Fprint(r.out, "> ")
		line, ok := r.next(ctx)
		if !ok {
			fmt.Fprintln(r.out)
			return ctx.Err()
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		err := r.dispatch(ctx, fields[0], fields[1:])
		switch {
		case errors.Is(err, errQuit):
			return nil
		case err != nil:
			fmt.Fprintln(r.out, "error:", err)
		}
	}
}

func (r *repl) next(ctx context.Context) (string, bool) {
	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-r.lines:
		return line, ok
	}
}

// readBlock collects lines until a line containing only ".".
func (r *repl) readBlock(ctx context.Context) (string, error) {
	var b []string
	for {
		line, ok := r.next(ctx)
		if !ok {
			return "", errors.New("input ended before the closing \".\"")
		}
		if line == "." {
			return strings.Join(b, "\n"), nil
		}
		b = append(b, line)
	}
}

func (r *repl) dispatch(ctx context.Context, name string, args []string) error {
	switch name {
	case "help", "?":
		fmt.Fprintln(r.out, sessionHelp)
	case "show":
		r.show()
	case "upload":
		if len(args) != 1 {
			return errors.New("usage: upload <path>")
		}
		return r.upload(ctx, args[0])
	case "edit":
		if len(args) != 1 {
			return errors.New("usage: edit <n>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("section number: %w", err)
		}
		fmt.Fprintln(r.out, `Enter the new text, then "." on its own line:`)
		body, err := r.readBlock(ctx)
		if err != nil {
			return err
		}
		if err := r.sess.EditSegment(n-1, body); err != nil {
			return err
		}
		r.show()
	case "reflect":
		fmt.Fprintln(r.out, `What's your main argument? Which sources did you use? End with ".":`)
		body, err := r.readBlock(ctx)
		if err != nil {
			return err
		}
		return r.sess.SetReflection(strings.TrimSpace(body))
	case "lang":
		if len(args) != 1 {
			return errors.New("usage: lang <en|hi|auto>")
		}
		r.auto = strings.EqualFold(args[0], "auto")
		lang, err := resolveLanguage(args[0], r.sess.Snapshot().Content())
		if err != nil {
			return err
		}
		if err := r.sess.SetLanguage(lang); err != nil {
			return err
		}
		fmt.Fprintf(r.out, "Feedback language: %s\n", lang)
	case "check":
		return r.check(ctx)
	case "result":
		st := r.sess.Snapshot()
		if st.Result == nil {
			return errors.New("no report yet; run check first")
		}
		return api.OutputTo(r.out, api.CurrentFormat(), view.Result(*st.Result))
	case "reset":
		if err := r.sess.Reset(); err != nil {
			return err
		}
		r.show()
	case "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q (try help)", name)
	}
	return nil
}

func (r *repl) show() {
	st := r.sess.Snapshot()
	if st.Stage == workflow.StageResult {
		fmt.Fprintln(r.out, `A report is ready: "result" shows it, "reset" starts a new draft.`)
		return
	}
	if err := api.OutputTo(r.out, api.CurrentFormat(), view.Editor(st)); err != nil {
		r.logger.Error("render failed", "error", err)
	}
}

func (r *repl) upload(ctx context.Context, path string) error {
	doc, err := ingest.Inspect(path, r.logger)
	if err != nil {
		return err
	}
	for _, w := range doc.Warnings {
		fmt.Fprintln(r.out, "warning:", w)
	}
	if err := r.sess.Upload(ctx, doc.File()); err != nil {
		return err
	}
	r.show()
	return nil
}

func (r *repl) check(ctx context.Context) error {
	if r.auto {
		lang := ingest.DetectLanguage(r.sess.Snapshot().Content())
		if err := r.sess.SetLanguage(lang); err != nil {
			return err
		}
	}
	if err := r.sess.Check(ctx); err != nil {
		return err
	}
	st := r.sess.Snapshot()
	if st.Stage != workflow.StageResult {
		r.show()
		return nil
	}
	if r.home != nil {
		if path, err := saveResult(r.home, *st.Result); err != nil {
			r.logger.Warn("result not saved", "error", err)
		} else {
			r.logger.Debug("result saved", "path", path)
		}
	}
	return api.OutputTo(r.out, api.CurrentFormat(), view.Result(*st.Result))
}

func init() {
	rootCmd.AddCommand(sessionCmd)
}
