package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aexvir/ovrsdk"
	"github.com/aexvir/ovrsdk/provision"
)

var rootCmd = &cobra.Command{
	Use:           "ovrsdk-setup",
	Short:         "ovrsdk-setup downloads the Oculus Mobile SDK, extracts it and patches it for building.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		conf, err := loadConfig(cmd.Flags())
		if err != nil {
			return err
		}

		return setup(cmd.Context(), conf)
	},
}

func init() {
	registerFlags(rootCmd.Flags())
}

// errReported marks errors already printed by the pipeline summary.
var errReported = errors.New("ovrsdk-setup failed")

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		report(os.Stderr, err)
		os.Exit(1)
	}
}

// report prints err unless the pipeline summary already showed it.
func report(w io.Writer, err error) {
	if errors.Is(err, errReported) {
		fmt.Fprintln(w, errReported)
		return
	}
	fmt.Fprintln(w, err)
}

// setup runs every provisioning step, stopping at the first failure.
func setup(ctx context.Context, conf Config) error {
	sdk, err := provision.New(
		conf.Version,
		conf.source(),
		provision.WithArchive(conf.Archive),
		provision.WithDirectory(conf.Directory),
		provision.WithClient(provision.NewClient(provision.WithTimeout(conf.Timeout))),
		provision.WithStrictPatching(conf.Strict),
	)
	if err != nil {
		return err
	}

	methods := make([]any, 0, len(sdk.Steps()))
	for _, step := range sdk.Steps() {
		methods = append(methods, step)
	}

	steps, err := ovrsdk.AsSteps(methods...)
	if err != nil {
		return err
	}

	pipeline := ovrsdk.New(
		ovrsdk.WithPreExecFunc(func(_ context.Context) error {
			ovrsdk.LogStep(fmt.Sprintf("provisioning oculus mobile sdk %s into %s", sdk.Version(), sdk.Directory()))
			return nil
		}),
		ovrsdk.WithPostExecFunc(func(_ context.Context) error {
			ovrsdk.LogStep(fmt.Sprintf("sdk ready at %s", sdk.Directory()))
			return nil
		}),
	)

	if err := pipeline.Execute(ctx, steps...); err != nil {
		return fmt.Errorf("%w: %w", errReported, err)
	}

	return nil
}
