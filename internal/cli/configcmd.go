package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bsptile/pkg/config"
	bsperrors "github.com/matzehuels/bsptile/pkg/errors"
)

// configCommand creates the config command for inspecting the startup configuration.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the startup configuration",
		Long: `Show the startup configuration.

Prints the configuration 'bsptile run' would start with, after the config
file and any layout flags are applied, as TOML.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			return config.Encode(cmd.OutOrStdout(), cfg)
		},
	}

	cmd.AddCommand(c.configPathCommand())
	cmd.AddCommand(c.configInitCommand())
	return cmd
}

func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configFile()
			if path == "" {
				return bsperrors.New(bsperrors.ErrCodeInvalidConfig, "cannot determine config directory")
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func (c *CLI) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the startup configuration to the config file",
		Long: `Write the startup configuration to the config file.

Layout flags given on the command line are included, so

  bsptile --outer-gap 10 --inner-gap 4 config init

creates a config file with those gaps.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configFile()
			if path == "" {
				return bsperrors.New(bsperrors.ErrCodeInvalidConfig, "cannot determine config directory")
			}
			if _, err := os.Stat(path); err == nil && !force {
				return bsperrors.New(bsperrors.ErrCodeInvalidRequest, "%s already exists, use --force to overwrite", path)
			}

			cfg, err := c.loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			if err := writeConfigFile(path, cfg); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Wrote config")
			printFile(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

// configFile returns --config when given, otherwise the default location.
func (c *CLI) configFile() string {
	if c.configPath != "" {
		return c.configPath
	}
	return defaultConfigPath()
}
