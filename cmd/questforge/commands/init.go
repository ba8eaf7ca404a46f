package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/questforge/questforge/pkg/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a sample configuration file",
	Long: `Initialize a sample QuestForge configuration file.

By default, the configuration file is created at $XDG_CONFIG_HOME/questforge/config.yaml.
Use --config to specify a custom path.

Examples:
  # Initialize with default location
  questforge init

  # Initialize with custom path
  questforge init --config /etc/questforge/config.yaml

  # Force overwrite existing config
  questforge init --force`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Force overwrite existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := GetConfigFile()
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	if !initForce {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config file already exists at %s (use --force to overwrite)", configPath)
		}
	}

	cfg := &config.Config{}
	config.ApplyDefaults(cfg)

	if err := config.SaveConfig(cfg, configPath); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	fmt.Printf("Configuration file created at: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Set the store credentials, either in the file or via environment:")
	fmt.Println("       export QUESTFORGE_STORE_ACCESS_KEY_ID=...")
	fmt.Println("       export QUESTFORGE_STORE_SECRET_ACCESS_KEY=...")
	fmt.Println("       export QUESTFORGE_STORE_BUCKET=...")
	fmt.Println("       export QUESTFORGE_STORE_ENDPOINT=...")
	fmt.Println("  2. Start the server with: questforge start")

	return nil
}
