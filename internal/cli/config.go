package cli

import (
	"fmt"

	"github.com/quynhluu-labs/quynhluu/internal/branding"
	"github.com/quynhluu-labs/quynhluu/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *App) *cobra.Command {
	dir := a.deps.Settings.Dir

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage user settings",
		Long: fmt.Sprintf(`Read and write settings stored in %s.
Every key can also be set through the environment as %s.`,
			config.FilePath(dir), branding.EnvVar("<KEY>")),
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if err := config.Set(dir, key, value); err != nil {
				return fmt.Errorf("setting config key %q: %w", key, err)
			}
			a.deps.Console.Success("Set %s = %s", key, value)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := config.Get(dir, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(a.deps.Console.Out(), value)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every configuration key and its effective value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, key := range config.Keys() {
				value, err := config.Get(dir, key)
				if err != nil {
					return err
				}
				if key == config.KeyGitHubToken && value != "" {
					value = "****"
				}
				fmt.Fprintf(a.deps.Console.Out(), "%s = %s\n", key, value)
			}
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(a.deps.Console.Out(), config.FilePath(dir))
			return nil
		},
	})

	return configCmd
}
