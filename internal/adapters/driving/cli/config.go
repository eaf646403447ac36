package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage folio configuration",
	Long: `View and change configuration values.

Keys use dot notation:

  api.url         workspace URL
  api.token       API token (use 'folio auth login' instead)
  api.rate_limit  client-side requests per second
  ui.compact      single-line rows in the TUI

Examples:
  folio config
  folio config get api.url
  folio config set api.rate_limit 4
  folio config set ui.compact true`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long:  `Sets a configuration value and writes the file immediately.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// shownKeys is the display order for config show.
var shownKeys = []string{"api.url", "api.token", "api.rate_limit", "ui.compact", "ui.verbose"}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Printf("Configuration (%s):\n\n", configStore.Path())
	for _, key := range shownKeys {
		value, ok := configStore.Get(key)
		if !ok {
			continue
		}
		cmd.Printf("  %-15s %v\n", key, displayValue(key, value))
	}

	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key := args[0]
	value, ok := configStore.Get(key)
	if !ok {
		return fmt.Errorf("key not set: %s", key)
	}

	cmd.Printf("%v\n", value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, raw := args[0], args[1]

	// Store booleans and integers typed so the getters see them
	var value any = raw
	if b, err := strconv.ParseBool(raw); err == nil {
		value = b
	} else if n, err := strconv.Atoi(raw); err == nil {
		value = n
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("Set %s = %v\n", key, displayValue(key, value))
	return nil
}

// displayValue masks the API token in command output.
func displayValue(key string, value any) any {
	if key != "api.token" {
		return value
	}
	s, ok := value.(string)
	if !ok || s == "" {
		return value
	}
	return truncate(s, 8) + "..."
}
