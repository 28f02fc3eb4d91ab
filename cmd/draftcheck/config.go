package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/draftcheck/internal/api"
	"github.com/jackzampolin/draftcheck/internal/config"
	"github.com/jackzampolin/draftcheck/internal/svcctx"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the draftcheck configuration",
}

var configInitCmd = &cobra.Command{
	Use:         "init",
	Short:       "Write a default config file to the home directory",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{offline: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		h := svcctx.HomeFrom(cmd.Context())
		if err := h.EnsureExists(); err != nil {
			return err
		}
		if h.ConfigExists() && !configForce {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", h.ConfigPath())
		}
		if err := config.WriteDefault(h.ConfigPath()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", h.ConfigPath())
		return nil
	},
}

// shownConfig hides the token while showing where it comes from.
type shownConfig struct {
	File   string         `json:"file" yaml:"file"`
	Config *config.Config `json:"config" yaml:"config"`
}

var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Print the effective configuration",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{offline: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := svcctx.ConfigFrom(cmd.Context())
		cfg := *mgr.Get()
		switch {
		case cfg.ResolvedToken() == "":
			cfg.Token = "(not set)"
		case cfg.Token == cfg.ResolvedToken():
			cfg.Token = "(set)"
		}
		file := mgr.File()
		if file == "" {
			file = "(defaults)"
		}
		return api.Output(shownConfig{File: file, Config: &cfg})
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing config file")
	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}
