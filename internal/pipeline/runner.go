package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"idverify/internal/consistency"
	"idverify/internal/document"
	"idverify/internal/extract"
	"idverify/internal/logging"
	"idverify/internal/textutil"
)

// TextReader acquires raw text for a document path.
type TextReader interface {
	Read(ctx context.Context, path string) (string, error)
}

// Source is a document path plus an optional kind hint.
type Source struct {
	Path string
	Kind document.Kind
}

// Result is the outcome of a check: the extracted records in input order and
// the comparison summary.
type Result struct {
	Records []document.Record   `json:"records"`
	Summary consistency.Summary `json:"summary"`
}

// Option configures the runner.
type Option func(*Runner)

// WithWorkers bounds the number of documents processed concurrently.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithExtractor replaces the built-in extractor.
func WithExtractor(e *extract.Extractor) Option {
	return func(r *Runner) {
		if e != nil {
			r.extractor = e
		}
	}
}

// WithLogger sets the runner logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Runner processes batches of sources.
type Runner struct {
	reader    TextReader
	extractor *extract.Extractor
	workers   int
	logger    *slog.Logger
}

// New constructs a Runner around reader.
func New(reader TextReader, opts ...Option) *Runner {
	r := &Runner{
		reader:    reader,
		extractor: extract.New(),
		workers:   1,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.NewComponentLogger(r.logger, "pipeline")
	return r
}

// Extract acquires and extracts every source. Records are returned in input
// order with names normalized and Source set to the path. The first
// acquisition error cancels the batch.
func (r *Runner) Extract(ctx context.Context, sources []Source) ([]document.Record, error) {
	records := make([]document.Record, len(sources))
	if len(sources) == 0 {
		return records, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, src := range sources {
		g.Go(func() error {
			rec, err := r.process(ctx, src)
			if err != nil {
				return err
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

// Check extracts every source and compares the records against the first.
func (r *Runner) Check(ctx context.Context, sources []Source) (Result, error) {
	records, err := r.Extract(ctx, sources)
	if err != nil {
		return Result{}, err
	}
	summary := consistency.Compare(records)
	if summary.Flagged() {
		r.logger.Warn("documents disagree with reference",
			logging.Int("mismatches", len(summary.Mismatches)),
			logging.Int("total_records", summary.TotalRecords),
		)
	}
	return Result{Records: records, Summary: summary}, nil
}

func (r *Runner) process(ctx context.Context, src Source) (document.Record, error) {
	if err := ctx.Err(); err != nil {
		return document.Record{}, err
	}
	logger := logging.WithContext(logging.WithSource(ctx, src.Path), r.logger)

	start := time.Now()
	text, err := r.reader.Read(ctx, src.Path)
	if err != nil {
		return document.Record{}, fmt.Errorf("read %s: %w", src.Path, err)
	}

	rec := r.extractor.Extract(text, src.Kind)
	rec = rec.WithName(textutil.NormalizeNamePtr(rec.Name))
	rec.Source = src.Path

	logger.Debug("document extracted",
		logging.String(logging.FieldKind, rec.Kind.String()),
		logging.Bool("name_found", rec.Name != nil),
		logging.Bool("dob_found", rec.DateOfBirth != nil),
		logging.Bool("id_found", rec.IDNumber != nil),
		logging.Duration("elapsed", time.Since(start)),
	)
	return rec, nil
}

// Sources pairs each path with the same kind hint.
func Sources(paths []string, kind document.Kind) []Source {
	out := make([]Source, 0, len(paths))
	for _, p := range paths {
		out = append(out, Source{Path: p, Kind: kind})
	}
	return out
}
