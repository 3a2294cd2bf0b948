package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"briefforge/internal/artifact"
)

func newAnalyzeCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <brief>",
		Short: "Produce a project analysis for a brief",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args[0], func(s *session, brief string, in artifact.Inputs) any {
				return s.svc.Analyze(cmd.Context(), brief, in)
			})
		},
	}
}

func newWebsiteCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "website <brief>",
		Short: "Generate a React landing component for a brief",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args[0], func(s *session, brief string, in artifact.Inputs) any {
				return s.svc.GenerateWebsite(cmd.Context(), brief, in)
			})
		},
	}
}

func newCombinedCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "combined <brief>",
		Short: "Generate the analysis and the component in one model call",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args[0], func(s *session, brief string, in artifact.Inputs) any {
				return s.svc.GenerateCombined(cmd.Context(), brief, in, o.model)
			})
		},
	}
}

func newRegenerateCmd(o *rootOptions) *cobra.Command {
	var code, changes string
	cmd := &cobra.Command{
		Use:   "regenerate",
		Short: "Restyle existing component code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readText(cmd.InOrStdin(), code)
			if err != nil {
				return err
			}
			if strings.TrimSpace(src) == "" {
				return errors.New("--code is required")
			}
			s, err := o.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close(cmd.Context())
			return writeJSON(cmd.OutOrStdout(), s.svc.Regenerate(cmd.Context(), src, changes, o.model))
		},
	}
	cmd.Flags().StringVar(&code, "code", "-", "component source, @file, or - for stdin")
	cmd.Flags().StringVar(&changes, "changes", "", "requested visual changes")
	return cmd
}

func newStatusCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Initialize the model gateway and report service status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close(cmd.Context())
			return writeJSON(cmd.OutOrStdout(), s.svc.Status())
		},
	}
}

// run reads the brief and inputs, opens a session and prints the envelope
// returned by call.
func (o *rootOptions) run(cmd *cobra.Command, briefArg string, call func(s *session, brief string, in artifact.Inputs) any) error {
	brief, err := readText(cmd.InOrStdin(), briefArg)
	if err != nil {
		return err
	}
	if strings.TrimSpace(brief) == "" {
		return errors.New("brief is empty")
	}
	in, err := o.structuredInputs()
	if err != nil {
		return err
	}
	s, err := o.open(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close(cmd.Context())
	return writeJSON(cmd.OutOrStdout(), call(s, brief, in))
}
