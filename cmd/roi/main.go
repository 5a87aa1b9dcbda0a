package main

import (
	"os"

	"github.com/mozark/roi-planner/internal/cli"
	"github.com/spf13/cobra"
)

func main() {
	command := NewRoiCtlCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewRoiCtlCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roi [flags] [options]",
		Short: "roi calculates the return on investment of Mozark test and latency optimisation.",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
			os.Exit(1)
		},
	}
	cmd.AddCommand(cli.NewCmdQA())
	cmd.AddCommand(cli.NewCmdOTT())
	cmd.AddCommand(cli.NewCmdPayment())
	cmd.AddCommand(cli.NewCmdBenchmarks())
	cmd.AddCommand(cli.NewCmdVersion())

	return cmd
}
