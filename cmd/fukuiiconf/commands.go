package main

import (
	"github.com/spf13/cobra"

	"github.com/donaldgifford/fukuiiconf/internal/runner"
	"github.com/donaldgifford/fukuiiconf/internal/tui"
)

func addSessionFlags(cmd *cobra.Command, req *runner.SessionRequest) {
	cmd.Flags().StringVar(&req.StateFile, "state", "", "state file to start from (- for stdin)")
	cmd.Flags().StringVar(&req.Profile, "profile", "", "profile preset to apply")
	cmd.Flags().StringVar(&req.Chain, "chain", "", "chain to target")
}

func addOutputFlags(cmd *cobra.Command, req *runner.RenderRequest) {
	cmd.Flags().BoolVar(&req.Output.Stdout, "stdout", false, "print the document instead of writing a file")
	cmd.Flags().StringVar(&req.Output.Check, "check", "", "exit 1 if FILE differs from the rendered document")
	cmd.Flags().StringVar(&req.Output.Diff, "diff", "", "print a unified diff of FILE against the rendered document")
	cmd.Flags().StringVar(&req.Output.OutDir, "out-dir", "", "directory to write into (default from config)")
	cmd.Flags().BoolVarP(&req.Output.Quiet, "quiet", "q", false, "suppress informational output")
	cmd.Flags().BoolVar(&req.Watch, "watch", false, "re-render whenever the state file changes")
	cmd.MarkFlagsMutuallyExclusive("stdout", "check", "diff")
}

func newRenderCmd() *cobra.Command {
	req := &runner.RenderRequest{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the main configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			exitCode = runner.Render(cmd.Context(), runnerOptions(cmd), req)
			return nil
		},
	}
	addSessionFlags(cmd, &req.Session)
	cmd.Flags().StringArrayVar(&req.Session.Sets, "set", nil, "set key=value (repeatable)")
	addOutputFlags(cmd, req)
	return cmd
}

func newChainCmd() *cobra.Command {
	req := &runner.RenderRequest{}
	cmd := &cobra.Command{
		Use:   "chain",
		Short: "Render the chain parameter file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			exitCode = runner.Chain(cmd.Context(), runnerOptions(cmd), req)
			return nil
		},
	}
	addSessionFlags(cmd, &req.Session)
	cmd.Flags().StringArrayVar(&req.Session.Forks, "fork", nil, "override fork block name=value (repeatable)")
	cmd.Flags().StringVar(&req.Session.NetworkID, "network-id", "", "override the network id")
	cmd.Flags().StringVar(&req.Session.ChainID, "chain-id", "", "override the chain id")
	addOutputFlags(cmd, req)
	return cmd
}

func newImportCmd() *cobra.Command {
	req := &runner.ImportRequest{}
	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import flat configuration files into a session",
		Long: `Import reads key = value lines from existing configuration files (or
stdin), merges them into a session and reports the closest profile.
Nested blocks are not parsed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Files = args
			exitCode = runner.Import(runnerOptions(cmd), req)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Profile, "profile", "", "profile preset to start from")
	cmd.Flags().StringVar(&req.Chain, "chain", "", "chain to target")
	cmd.Flags().StringVar(&req.EmitState, "emit-state", "", "write the session as a state file (- for stdout)")
	cmd.Flags().BoolVar(&req.Render, "render", false, "print the re-rendered configuration")
	return cmd
}

func newCatalogCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:       "catalog {profiles|chains|fields}",
		Short:     "List built-in profiles, chains or fields",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{runner.ListProfiles, runner.ListChains, runner.ListFields},
		RunE: func(cmd *cobra.Command, args []string) error {
			exitCode = runner.Catalog(runnerOptions(cmd), args[0], format)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", runner.FormatTable, "output format: table or yaml")
	return cmd
}

func newTUICmd() *cobra.Command {
	req := &runner.SessionRequest{}
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the interactive configuration wizard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := runner.Load(runnerOptions(cmd))
			if err != nil {
				return err
			}
			st, err := env.Session(req)
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), env, st)
		},
	}
	addSessionFlags(cmd, req)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			exitCode = runner.Version(runnerOptions(cmd), runner.BuildInfo{
				Version: version,
				Commit:  commit,
				Date:    date,
			})
			return nil
		},
	}
}
