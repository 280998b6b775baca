package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spiffcs/widgets/config"
)

// NewCmdConfig creates the config command with subcommands.
func NewCmdConfig() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or manage configuration",
		Long: `Show or manage configuration.

When run without arguments, shows the current merged configuration.

Subcommands:
  init      Create a minimal config file
  path      Show config file locations
  defaults  Show all default values
  show      Show current merged config (same as bare 'widgets config')
  set       Set a configuration value`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd, args, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "yaml", "Output format (yaml, json)")

	cmd.AddCommand(NewCmdConfigInit())
	cmd.AddCommand(NewCmdConfigPath())
	cmd.AddCommand(NewCmdConfigDefaults())
	cmd.AddCommand(NewCmdConfigShow())
	cmd.AddCommand(NewCmdConfigSet())

	return cmd
}

// NewCmdConfigInit creates the config init subcommand.
func NewCmdConfigInit() *cobra.Command {
	var global, local bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a minimal config file",
		Long: `Create a minimal config file with starter settings.

Use --global to create in ~/.config/widgets/config.yaml (applies everywhere)
Use --local to create in ./.widgets.yaml (applies only in this directory)
Without flags, you'll be prompted to choose.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd, global, local)
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "Create global config file (~/.config/widgets/config.yaml)")
	cmd.Flags().BoolVar(&local, "local", false, "Create local config file (./.widgets.yaml)")

	return cmd
}

// NewCmdConfigPath creates the config path subcommand.
func NewCmdConfigPath() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show config file locations",
		Long:  `Show the paths to global and local config files and indicate which exist.`,
		RunE:  runConfigPath,
	}
}

// NewCmdConfigDefaults creates the config defaults subcommand.
func NewCmdConfigDefaults() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Show all default configuration values",
		Long: `Show a complete configuration with all default values.

This can be redirected to create a config file with all defaults:
  widgets config defaults > ~/.config/widgets/config.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigDefaults(cmd, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "yaml", "Output format (yaml, json)")

	return cmd
}

// NewCmdConfigShow creates the config show subcommand.
func NewCmdConfigShow() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current merged configuration",
		Long:  `Show the current configuration after merging defaults, global, and local configs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd, args, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "yaml", "Output format (yaml, json)")

	return cmd
}

// NewCmdConfigSet creates the config set subcommand.
func NewCmdConfigSet() *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value. Available keys:
  format          - Default output format for days (table, json, yaml, markdown)
  size            - Default preview size (small, medium, large, ...)
  locale          - Duration units: zh or en
  documents_dir   - Where widget data and scripts are stored
  days_widget     - Name of the anniversary data file
  timeout         - Remote request timeout (e.g. 15s)
  workers         - Concurrent script downloads
  notes.base_url  - Budibase host
  notes.row_id    - Row holding the note`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd, args, local)
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Write to the local config file (./.widgets.yaml)")

	return cmd
}

func runConfigInit(cmd *cobra.Command, global, local bool) error {
	if global && local {
		return fmt.Errorf("cannot specify both --global and --local")
	}
	out := cmd.OutOrStdout()
	paths := config.GetConfigPaths()

	location := "global"
	if local {
		location = "local"
	}
	if !global && !local {
		fmt.Fprintln(out, "Where would you like to create the config file?")
		fmt.Fprintf(out, "  [1] Global (%s) - applies everywhere\n", paths.GlobalPath)
		fmt.Fprintf(out, "  [2] Local (%s) - applies only in this directory\n", paths.LocalPath)
		fmt.Fprint(out, "Choose [1/2]: ")

		choice, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && choice == "" {
			return fmt.Errorf("failed to read input: %w", err)
		}
		switch strings.TrimSpace(choice) {
		case "1":
			location = "global"
		case "2":
			location = "local"
		default:
			return fmt.Errorf("invalid choice: %s (must be 1 or 2)", strings.TrimSpace(choice))
		}
		fmt.Fprintln(out)
	}

	targetPath := paths.GlobalPath
	if location == "local" {
		targetPath = paths.LocalPath
	}

	if _, err := os.Stat(targetPath); err == nil {
		return fmt.Errorf("config file already exists: %s\nUse 'widgets config show' to view current config", targetPath)
	}
	if err := config.SaveTo(targetPath, config.MinimalConfig()); err != nil {
		return err
	}

	fmt.Fprintf(out, "Created %s config file: %s\n\n", location, targetPath)
	fmt.Fprintln(out, "Edit this file to customize the widgets.")
	fmt.Fprintln(out, "Run 'widgets config defaults' to see all available options.")
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	paths := config.GetConfigPaths()
	out := cmd.OutOrStdout()

	status := func(exists bool) string {
		if exists {
			return "exists"
		}
		return "not found"
	}

	fmt.Fprintln(out, "Configuration file locations:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Global: %s (%s)\n", paths.GlobalPath, status(paths.GlobalExists))
	fmt.Fprintf(out, "  Local:  %s (%s)\n", paths.LocalPath, status(paths.LocalExists))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Load order: defaults -> global -> local (local overrides global)")
	return nil
}

func runConfigDefaults(cmd *cobra.Command, format string) error {
	return printConfig(cmd.OutOrStdout(), config.DefaultConfig(), format)
}

func runConfigShow(cmd *cobra.Command, _ []string, format string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	return printConfig(cmd.OutOrStdout(), cfg, format)
}

// printConfig writes cfg as yaml or json.
func printConfig(w io.Writer, cfg *config.Config, format string) error {
	switch format {
	case "yaml":
		yamlStr, err := cfg.ToYAML()
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, yamlStr)
		return err
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config to JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	default:
		return fmt.Errorf("invalid format: %s (must be yaml or json)", format)
	}
}

func runConfigSet(cmd *cobra.Command, args []string, local bool) error {
	// Only the target file is rewritten so merged values are not copied
	// between the global and local configs.
	path := config.ConfigPath()
	if local {
		path = config.LocalConfigPath()
	}
	cfg, err := config.LoadFrom(path, "")
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := cfg.SaveFile(path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s set to %s in %s.\n", key, value, path)
	return nil
}
