package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "briefforge",
		Short:         "Turn a project brief into an analysis and a React landing component",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	opts.bind(root)

	root.AddCommand(
		newAnalyzeCmd(opts),
		newWebsiteCmd(opts),
		newCombinedCmd(opts),
		newRegenerateCmd(opts),
		newStatusCmd(opts),
	)
	return root
}
