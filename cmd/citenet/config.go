package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/citenet/internal/config"
)

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
	Long: `Inspect the effective configuration.

Values come from built-in defaults, the config file, CITENET_* environment
variables (a .env file in the working directory is honored) and flags, in
increasing precedence.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

// ConfigResponse is the JSON output of config show.
type ConfigResponse struct {
	Path   string                 `json:"path"`
	Config map[string]interface{} `json:"config"`
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	if humanOutput {
		data, err := cfg.Marshal()
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	}

	m, err := cfg.Map()
	if err != nil {
		return err
	}
	return outputJSON(ConfigResponse{Path: effectiveConfigPath(), Config: m})
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	if humanOutput {
		fmt.Println(effectiveConfigPath())
		return nil
	}
	return outputJSON(map[string]string{"path": effectiveConfigPath()})
}

func effectiveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.Path()
}
