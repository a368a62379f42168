/*
nvngx probes the NGX runtime on the local GPU: which features the driver
offers, what the capability map holds, the optimal DLSS render sizes and
whether a super sampling feature can be created.
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spaghettifunk/nvngx/engine/core"
)

var (
	version  = "0.1.0"
	cfgFile  string
	logLevel string
	config   *core.Config
)

var rootCmd = &cobra.Command{
	Use:           "nvngx",
	Short:         "NVIDIA NGX probe",
	Long:          `nvngx - query NGX capabilities and DLSS settings on a headless Vulkan device`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := core.DefaultConfig()
		if cfgFile != "" {
			loaded, err := core.LoadConfig(cfgFile)
			if err != nil {
				return err
			}
			cfg = loaded
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		if err := core.SetLogLevel(cfg.LogLevel); err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
		}
		config = cfg
		return nil
	},
}

var capabilitiesCmd = &cobra.Command{
	Use:   "capabilities",
	Short: "Report which NGX features the driver supports",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(printCapabilities)
	},
}

var parametersCmd = &cobra.Command{
	Use:   "parameters",
	Short: "Dump the capability parameter map",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(printParameters)
	},
}

var optimalCmd = &cobra.Command{
	Use:   "optimal",
	Short: "Print the optimal DLSS render size for the configured target",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(printOptimalSettings)
	},
}

var createHold bool

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create and release a DLSS super sampling feature",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *session) error {
			return createSuperSampling(s, createHold)
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("nvngx v%s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "TOML config file (defaults are used when empty)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "overrides log_level from the config")
	rootCmd.PersistentFlags().BoolVar(&enableValidation, "validation", false, "enable the Khronos validation layer")
	rootCmd.PersistentFlags().BoolVar(&requireDiscrete, "discrete", false, "only accept a discrete GPU")

	optimalCmd.Flags().Uint32Var(&overrideWidth, "width", 0, "target width (config value when 0)")
	optimalCmd.Flags().Uint32Var(&overrideHeight, "height", 0, "target height (config value when 0)")
	optimalCmd.Flags().StringVar(&overrideQuality, "quality", "", "quality preset (config value when empty)")

	createCmd.Flags().BoolVar(&createHold, "hold", false, "keep the feature alive until interrupted, reloading the config on change")

	rootCmd.AddCommand(capabilitiesCmd)
	rootCmd.AddCommand(parametersCmd)
	rootCmd.AddCommand(optimalCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
