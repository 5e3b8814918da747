package main

import (
	"encoding/json"
	"fmt"

	"github.com/Aleph-Alpha/job-openings-rag/pkg/config"
	"github.com/Aleph-Alpha/job-openings-rag/pkg/jobs"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "jobindex",
		Short: "Job openings API with semantic search",
		Long: `jobindex stores job openings, splits them into chunks, embeds the chunks
and keeps them in a vector index so openings can be searched by meaning.

Configuration is read from defaults, then the YAML file given with --config
(or ` + config.EnvConfigFile + `), then ` + config.EnvPrefix + `* environment variables.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(configPath)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML configuration file")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP API",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runServe(configPath)
			},
		},
		&cobra.Command{
			Use:   "check-config",
			Short: "Load and validate the configuration, then print the selected backends",
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := config.Load(configPath)
				if err != nil {
					return err
				}
				if err := fx.ValidateApp(appOptions(cfg)); err != nil {
					return fmt.Errorf("dependency graph is incomplete: %w", err)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "vector backend:   %s\n", cfg.Vector.Backend)
				fmt.Fprintf(out, "document store:   %s\n", cfg.Docstore.Backend)
				fmt.Fprintf(out, "events:           %s\n", cfg.Events.Backend)
				fmt.Fprintf(out, "embedding:        %s (%s, %d dims)\n", cfg.Embedding.Provider, cfg.Embedding.Model, cfg.Embedding.Dimension)
				fmt.Fprintf(out, "agent enabled:    %t\n", cfg.Agent.Enabled)
				fmt.Fprintf(out, "listen address:   %s\n", cfg.Server.Address)
				return nil
			},
		},
		&cobra.Command{
			Use:   "schema",
			Short: "Print the JSON schema of a job opening",
			RunE: func(cmd *cobra.Command, _ []string) error {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(jobs.Schema())
			},
		},
	)
	return root
}

func runServe(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	app := fx.New(appOptions(cfg), fx.NopLogger)
	app.Run()
	return app.Err()
}
