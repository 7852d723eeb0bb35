package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/andyballingall/fmtree/internal/config"
	"github.com/andyballingall/fmtree/internal/formatter"
	"github.com/andyballingall/fmtree/internal/fsh"
	"github.com/andyballingall/fmtree/internal/repo"
	"github.com/andyballingall/fmtree/internal/report"
	"github.com/andyballingall/fmtree/internal/source"
)

// OutputOptions controls how results are presented.
type OutputOptions struct {
	Format    string
	UseColour bool
}

// Manager defines the business logic for formatting source trees.
type Manager interface {
	// Format formats every eligible file under roots. With no roots, the configured
	// roots are used.
	Format(ctx context.Context, roots []string, opts OutputOptions) error
	// FormatChanged formats eligible files under roots that differ from rev.
	FormatChanged(ctx context.Context, rev repo.Revision, roots []string, opts OutputOptions) error
	// Watch formats roots, then reformats files as they change until ctx is done.
	// If readyChan is non-nil it is closed once changes are being watched.
	Watch(ctx context.Context, roots []string, opts OutputOptions, readyChan chan<- struct{}) error
}

// Ensure the interface is satisfied.
var _ Manager = (*LazyManager)(nil)

// LazyManager acts as a placeholder for a real Manager implementation, allowing
// for deferred initialization of dependencies.
type LazyManager struct {
	inner Manager
}

func (l *LazyManager) SetInner(m Manager) {
	l.inner = m
}

// HasInner returns true if the inner manager has been set.
// This is used by PersistentPreRunE to skip initialization if already configured (e.g., in tests).
func (l *LazyManager) HasInner() bool {
	return l.inner != nil
}

func (l *LazyManager) check() Manager {
	if l.inner == nil {
		panic("LazyManager accessed before initialization; check command wiring.")
	}
	return l.inner
}

func (l *LazyManager) Format(ctx context.Context, roots []string, opts OutputOptions) error {
	return l.check().Format(ctx, roots, opts)
}

func (l *LazyManager) FormatChanged(ctx context.Context, rev repo.Revision, roots []string,
	opts OutputOptions,
) error {
	return l.check().FormatChanged(ctx, rev, roots, opts)
}

func (l *LazyManager) Watch(ctx context.Context, roots []string, opts OutputOptions,
	readyChan chan<- struct{},
) error {
	return l.check().Watch(ctx, roots, opts, readyChan)
}

// FileFormatter formats a single file.
type FileFormatter interface {
	FormatFile(ctx context.Context, path string) (formatter.Result, error)
}

// Ensure the interface is satisfied.
var _ Manager = (*CLIManager)(nil)

// CLIManager is the concrete implementation of the Manager interface.
type CLIManager struct {
	logger         *slog.Logger
	cfg            *config.Config
	classifier     *source.Classifier
	formatter      FileFormatter
	gitter         repo.Gitter
	checkOnly      bool
	reporterWriter io.Writer
}

func NewCLIManager(
	l *slog.Logger,
	cfg *config.Config,
	c *source.Classifier,
	f FileFormatter,
	g repo.Gitter,
	checkOnly bool,
	w io.Writer,
) *CLIManager {
	return &CLIManager{
		logger:         l,
		cfg:            cfg,
		classifier:     c,
		formatter:      f,
		gitter:         g,
		checkOnly:      checkOnly,
		reporterWriter: w,
	}
}

func (m *CLIManager) roots(roots []string) []string {
	if len(roots) == 0 {
		return m.cfg.Roots
	}
	return roots
}

func (m *CLIManager) newReporter(opts OutputOptions) report.Reporter {
	switch opts.Format {
	case OutputJSON:
		return report.NewJSONReporter(m.reporterWriter)
	default:
		return report.NewTextReporter(m.reporterWriter, opts.UseColour)
	}
}

// run formats a single file and reports the result.
func (m *CLIManager) run(ctx context.Context, path string, r report.Reporter, s *report.Summary) error {
	res, err := m.formatter.FormatFile(ctx, path)
	if err != nil {
		return err
	}
	s.Add(res)
	return r.Add(res)
}

// finish completes the report. In check mode, it fails if any file needs formatting.
func (m *CLIManager) finish(r report.Reporter, s *report.Summary) error {
	s.End()
	if err := r.Finish(s); err != nil {
		return err
	}
	m.logger.Info(summaryMessage(s), "duration", s.Duration())

	if m.checkOnly && s.Changed > 0 {
		return &UnformattedFilesError{Count: s.Changed}
	}
	return nil
}

// summaryMessage describes a finished run, e.g. "formatted 3 files, 1 changed".
func summaryMessage(s *report.Summary) string {
	files := "files"
	if s.Total() == 1 {
		files = "file"
	}
	if s.CheckOnly {
		return fmt.Sprintf("checked %d %s, %d need formatting", s.Total(), files, s.Changed)
	}
	return fmt.Sprintf("formatted %d %s, %d changed", s.Total(), files, s.Changed)
}

func (m *CLIManager) Format(ctx context.Context, roots []string, opts OutputOptions) error {
	roots = m.roots(roots)
	m.logger.Debug("formatting", "roots", roots, "checkOnly", m.checkOnly)

	// Every root must exist before anything is formatted.
	if err := source.CheckRoots(roots); err != nil {
		return err
	}

	reporter := m.newReporter(opts)
	summary := report.NewSummary(m.checkOnly)
	walker := source.NewWalker(m.classifier)

	visit := func(ctx context.Context, path string) error {
		return m.run(ctx, path, reporter, summary)
	}
	for _, root := range roots {
		if err := walker.Walk(ctx, root, visit); err != nil {
			return err
		}
	}

	return m.finish(reporter, summary)
}

func (m *CLIManager) FormatChanged(ctx context.Context, rev repo.Revision, roots []string,
	opts OutputOptions,
) error {
	roots = m.roots(roots)
	m.logger.Debug("formatting changed files", "revision", rev, "roots", roots)

	if err := source.CheckRoots(roots); err != nil {
		return err
	}

	files, err := m.gitter.ChangedFiles(ctx, rev, roots)
	if err != nil {
		return err
	}

	reporter := m.newReporter(opts)
	summary := report.NewSummary(m.checkOnly)

	for _, path := range files {
		if !m.classifier.IsSource(path) {
			continue
		}
		info, sErr := os.Stat(path)
		if sErr != nil {
			return sErr
		}
		if !info.Mode().IsRegular() {
			m.logger.Debug("skipping non-regular file", "path", path)
			continue
		}
		if err = m.run(ctx, path, reporter, summary); err != nil {
			return err
		}
	}

	return m.finish(reporter, summary)
}

// Watch formats the roots once, then watches them for changes. Files are formatted
// one at a time in the order their changes are reported.
func (m *CLIManager) Watch(ctx context.Context, roots []string, opts OutputOptions,
	readyChan chan<- struct{},
) error {
	if opts.Format == OutputJSON {
		return &UnsupportedOutputError{Command: WatchCmdName, Output: opts.Format}
	}
	roots = m.roots(roots)

	var unformatted *UnformattedFilesError
	if err := m.Format(ctx, roots, opts); err != nil && !errors.As(err, &unformatted) {
		return err
	}

	reporter := m.newReporter(opts)
	watcher := source.NewWatcher(roots, m.classifier, m.logger)
	paths := make(chan string)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return watcher.Watch(gctx, paths)
	})
	g.Go(func() error {
		select {
		case <-watcher.Ready:
			if readyChan != nil {
				close(readyChan)
			}
		case <-gctx.Done():
			return nil
		}
		return m.consume(gctx, paths, reporter)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if ctx.Err() != nil {
		m.logger.Info("Interrupted by user")
	}
	return nil
}

// consume formats each path received until ctx is done. A path whose content is
// still exactly what fmtree last wrote to it is skipped, so write-backs are not
// reported again.
func (m *CLIManager) consume(ctx context.Context, paths <-chan string, r report.Reporter) error {
	written := map[string]string{}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case path := <-paths:
			if digest, ok := written[path]; ok {
				if current, err := fsh.Digest(path); err == nil && current == digest {
					continue
				}
				delete(written, path)
			}

			res, err := m.formatter.FormatFile(ctx, path)
			if err != nil {
				var failed *formatter.FailedError
				if errors.As(err, &failed) || errors.Is(err, os.ErrNotExist) {
					m.logger.Error("Formatting failed", "path", path, "error", err)
					continue
				}
				return err
			}
			if res.Written {
				written[path] = res.Digest
			}
			if err = r.Add(res); err != nil {
				return err
			}
		}
	}
}
