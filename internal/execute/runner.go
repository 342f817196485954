package execute

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jacoelho/jsonset/internal/config"
	"github.com/jacoelho/jsonset/internal/document"
	"github.com/jacoelho/jsonset/internal/exit"
	"github.com/jacoelho/jsonset/internal/present"
	"github.com/jacoelho/jsonset/internal/report"
	"github.com/jacoelho/jsonset/internal/setops"
)

type Runner struct {
	config    *config.Config
	mode      present.Mode
	output    io.Writer
	errOutput io.Writer
}

func New(cfg *config.Config) (*Runner, *exit.Result) {
	mode, err := cfg.RenderMode()
	if err != nil {
		return nil, exit.Usage(err, config.Usage())
	}

	return &Runner{
		config:    cfg,
		mode:      mode,
		output:    os.Stdout,
		errOutput: os.Stderr,
	}, nil
}

// SetOutput replaces standard output. It has no effect when the config names
// an output file.
func (r *Runner) SetOutput(w io.Writer) {
	r.output = w
}

func (r *Runner) SetErrorOutput(w io.Writer) {
	r.errOutput = w
}

func (r *Runner) payloadWriter() io.Writer {
	if r.output == nil {
		return io.Discard
	}
	return r.output
}

func (r *Runner) errorWriter() io.Writer {
	if r.errOutput == nil {
		return io.Discard
	}
	return r.errOutput
}

func (r *Runner) logger() *slog.Logger {
	if !r.config.Debug {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(r.errorWriter(), &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func (r *Runner) fail(err error) int {
	result := exit.FromError(err)
	result.Output = r.errorWriter()
	result.Print()
	return result.ExitCode
}

// Run loads every document, applies the output map and writes the report.
// Nothing is written to the destination unless every step succeeds.
func (r *Runner) Run(ctx context.Context) int {
	log := r.logger()

	loader, err := document.NewLoader(r.config.LoaderOptions(), log)
	if err != nil {
		return r.fail(err)
	}

	docs, err := loader.LoadAll(ctx, r.config.InputFiles)
	if err != nil {
		return r.fail(err)
	}

	results, err := r.apply(ctx, log, document.Inputs(docs))
	if err != nil {
		return r.fail(err)
	}

	var buf bytes.Buffer
	w := report.New(&buf, report.Options{Mode: r.mode, Summary: r.config.Summary})
	if err := w.WriteAll(results); err != nil {
		return r.fail(fmt.Errorf("render results: %w", err))
	}

	if err := r.flush(buf.Bytes()); err != nil {
		return r.fail(err)
	}

	return exit.CodeSuccess
}

func (r *Runner) apply(ctx context.Context, log *slog.Logger, inputs []setops.Input) ([]setops.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results, err := setops.ApplyAll(r.config.OutputMap, inputs)
	if err != nil {
		return nil, err
	}

	for _, result := range results {
		for _, section := range result.Sections {
			log.Debug("applied operation",
				slog.String("operation", result.Operation.String()),
				slog.String("label", section.Label),
				slog.Int("tuples", section.Set.Len()))
		}
	}
	return results, nil
}

func (r *Runner) flush(payload []byte) error {
	if r.config.UsesStdout() {
		_, err := r.payloadWriter().Write(payload)
		return err
	}

	if err := os.WriteFile(r.config.Output, payload, 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
