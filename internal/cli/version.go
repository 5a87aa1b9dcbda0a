package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/mozark/roi-planner/pkg/version"
	"github.com/spf13/cobra"
)

type VersionOptions struct {
	GlobalOptions
}

func DefaultVersionOptions() *VersionOptions {
	return &VersionOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdVersion() *cobra.Command {
	o := DefaultVersionOptions()
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print ROI planner version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *VersionOptions) Run(ctx context.Context, w io.Writer) error {
	versionInfo := version.Get()
	if o.Output == "" {
		fmt.Fprintf(w, "ROI Planner Version: %s\n", versionInfo.String())
		return nil
	}
	return printOutput(w, o.Output, versionInfo)
}
