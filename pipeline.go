package ovrsdk

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
)

// Pipeline runs a sequence of steps, stopping at the first one that fails.
// The pipeline can be customized with pre- and post- execution hooks, where
// functionality common to every run can be defined.
type Pipeline struct {
	PreExecHook  Step
	PostExecHook Step
}

// New constructs a pipeline.
func New(opts ...Option) *Pipeline {
	p := Pipeline{
		PreExecHook:  func(_ context.Context) error { return nil },
		PostExecHook: func(_ context.Context) error { return nil },
	}

	for _, opt := range opts {
		opt(&p)
	}

	return &p
}

// Execute a list of steps inside the pipeline.
// Steps run sequentially and the run is aborted as soon as one of them returns an error;
// anything produced by the steps that already ran is left as is.
// The post exec hook only runs when every step succeeded.
func (p *Pipeline) Execute(ctx context.Context, steps ...Step) (err error) {
	start := time.Now()

	fmt.Printf("\n")

	defer func() {
		elapsed := time.Since(start).Round(time.Millisecond)
		color.New(color.FgHiBlack).Printf("------------------------\n\n")

		if err != nil {
			color.Red(" ✘ failed after %s", elapsed)
			color.Red("   • %s", err.Error())
			fmt.Printf("\n")
			return
		}

		color.Green(" ✔ all good after %s\n\n", elapsed)
	}()

	if err := p.PreExecHook(ctx); err != nil {
		return fmt.Errorf("failed to run pre exec hook: %w", err)
	}

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("aborted before step %d: %w", i+1, err)
		}

		if err := step(ctx); err != nil {
			return err
		}
	}

	if err := p.PostExecHook(ctx); err != nil {
		return fmt.Errorf("failed to run post exec hook: %w", err)
	}

	return nil
}

// Step defines the basic function that the pipeline executes.
// Additional configuration can be done by using closures or method values
// which return Steps.
type Step func(ctx context.Context) error

type Option func(p *Pipeline)

// WithPreExecFunc allows specifying a step that will be run every execution, before the
// specific execution steps are run.
func WithPreExecFunc(hook Step) Option {
	return func(p *Pipeline) {
		p.PreExecHook = hook
	}
}

// WithPostExecFunc allows specifying a step that will be run after every successful execution.
func WithPostExecFunc(hook Step) Option {
	return func(p *Pipeline) {
		p.PostExecHook = hook
	}
}

// LogStep prints a step header.
func LogStep(text string) {
	fmt.Println(
		color.MagentaString(" ⌘"),
		color.New(color.Bold).Sprint(text),
	)
}
