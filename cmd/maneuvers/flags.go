package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	maneuvers "github.com/RCoder01/orbital-maneuvers"
)

// bindFlags binds the flags of cmd to configuration keys. Binding happens when the command runs
// because several commands share keys.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for flag, key := range keys {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("binding --%s: %w", flag, err)
		}
	}
	return nil
}

// catalogIndex parses a catalog index argument.
func catalogIndex(arg string, catalog []maneuvers.Record) (int, error) {
	idx, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid catalog index %q: %w", arg, err)
	}
	if idx < 0 || idx >= len(catalog) {
		return 0, fmt.Errorf("catalog index %d out of range [0, %d)", idx, len(catalog))
	}
	return idx, nil
}
