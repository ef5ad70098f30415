package main

import (
	"fmt"
	"os"

	"github.com/jgoulah/hvacsim/internal/config"
	"github.com/spf13/cobra"
)

var initForce bool

var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Write a config file with every default filled in",
	RunE:  runInitConfig,
}

func init() {
	initConfigCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initConfigCmd)
}

func runInitConfig(cmd *cobra.Command, args []string) error {
	path := getConfigPath()
	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := saveConfig(config.Default()); err != nil {
		return err
	}

	fmt.Printf("✓ Wrote default config to %s\n", path)
	return nil
}
