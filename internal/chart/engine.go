package chart

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	logx "github.com/Chative-core-poc-v1/querychart/pkg/logger"
	"golang.org/x/sync/semaphore"
)

// Engine validates chart requests and renders them into PNG artifacts under
// a fixed export directory. It is safe for concurrent use: every call builds
// its own plot and canvas, and at most MaxConcurrentRenders calls draw at once.
type Engine struct {
	opts Options
	sem  *semaphore.Weighted
	now  func() time.Time
}

// NewEngine returns an Engine writing into opts.ExportDir, which must already
// exist. Zero-valued options take the values of DefaultOptions.
func NewEngine(opts Options) (*Engine, error) {
	opts = opts.withDefaults()
	info, err := os.Stat(opts.ExportDir)
	if err != nil {
		return nil, fmt.Errorf("export dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("export dir %q is not a directory", opts.ExportDir)
	}
	return &Engine{
		opts: opts,
		sem:  semaphore.NewWeighted(int64(opts.MaxConcurrentRenders)),
		now:  time.Now,
	}, nil
}

// ExportDir returns the directory artifacts are written to.
func (e *Engine) ExportDir() string { return e.opts.ExportDir }

// CreateChart validates req for kind and renders it. Validation failures are
// returned as *ValidationError before any rendering resource is allocated;
// failures while drawing or saving come back as *RenderError.
func (e *Engine) CreateChart(ctx context.Context, req Request, kind Kind) (*Artifact, error) {
	series, err := Prepare(req, kind)
	if err != nil {
		logx.Debug().Err(err).Str("kind", kind.String()).Msg("chart request rejected")
		return nil, err
	}
	return e.Render(ctx, series)
}

// Render draws an already prepared series.
func (e *Engine) Render(ctx context.Context, s Series) (*Artifact, error) {
	if err := e.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer e.sem.Release(1)

	start := e.now()
	p, err := buildPlot(s, e.opts)
	if err != nil {
		return nil, e.renderFailed(s, "build", err)
	}
	name, err := persist(e.opts.ExportDir, func(w io.Writer) error {
		return writePNG(p, e.opts, w)
	})
	if err != nil {
		return nil, e.renderFailed(s, "save", err)
	}

	a := &Artifact{
		Filename:  name,
		Dir:       e.opts.ExportDir,
		Kind:      s.Kind(),
		Title:     s.ChartTitle(),
		Points:    s.Points(),
		CreatedAt: e.now().UTC(),
	}
	logx.Info().
		Str("kind", a.Kind.String()).
		Str("filename", a.Filename).
		Int("points", a.Points).
		Dur("elapsed", e.now().Sub(start)).
		Msg("chart created")
	return a, nil
}

func (e *Engine) renderFailed(s Series, stage string, err error) error {
	logx.Error().
		Err(err).
		Str("kind", s.Kind().String()).
		Str("stage", stage).
		Str("title", s.ChartTitle()).
		Int("points", s.Points()).
		Msg("error creating chart")
	return &RenderError{Kind: s.Kind(), Stage: stage, Err: err}
}
