package commands

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/diogo/webchat/internal/config"
	"github.com/diogo/webchat/internal/settings"
	"github.com/diogo/webchat/internal/tui"
)

func newSettingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Open the settings menu",
		Long: `Interactive menu for the display preferences and the configuration.

Preferences can also be read and written directly:
  webchat settings get                     List every preference
  webchat settings get theme               Print one preference
  webchat settings set messageDisplay compact`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, prefs, err := a.settings()
			if err != nil {
				return err
			}
			configPath, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			settingsPath, err := config.GetSettingsPath()
			if err != nil {
				return err
			}
			// the file values, without --server or env overrides
			cfg, err := config.LoadConfigFrom(configPath)
			if err != nil {
				return err
			}
			return a.deps.TUI.RunSettings(tui.NewSettingsModel(prefs, cfg, configPath, settingsPath))
		},
	}

	cmd.AddCommand(newSettingsGetCmd(a), newSettingsSetCmd(a))
	return cmd
}

func newSettingsGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "get [key]",
		Short:     "Print preferences",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: settings.Keys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, prefs, err := a.settings()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				v, err := prefs.Value(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(out, v)
				return nil
			}

			keys := settings.Keys()
			sort.Strings(keys)
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, key := range keys {
				v, _ := prefs.Value(key)
				_, _ = fmt.Fprintf(w, "%s\t%s\n", key, v)
			}
			return w.Flush()
		},
	}
}

func newSettingsSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Change a preference",
		Args:      cobra.ExactArgs(2),
		ValidArgs: settings.Keys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, prefs, err := a.settings()
			if err != nil {
				return err
			}
			if err := prefs.Set(args[0], args[1]); err != nil {
				return err
			}
			v, _ := prefs.Value(args[0])
			a.logger.Info("setting changed", "key", args[0], "value", v)
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], v)
			return nil
		},
	}
}
