package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"toy-surface/pkg/material"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "surf",
	Short: "Silicon surface electrostatics and recombination",
	Long: `surf solves the quasi-Fermi levels of a doped silicon sample under
carrier injection or photovoltage, balances the surface charge to find the
surface potential, and evaluates the midgap-trap surface recombination
rate.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogging()
	},
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./surf.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("surf")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("using config file", "file", viper.ConfigFileUsed())
	}
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

// materialParams builds the physical configuration, letting the config
// file override the silicon-at-300K defaults.
func materialParams() material.Params {
	params := material.Silicon()
	if viper.IsSet("temperature") {
		params.Temp = viper.GetFloat64("temperature")
	}
	if viper.IsSet("ni") {
		params.Ni = viper.GetFloat64("ni")
	}
	if viper.IsSet("eps_si") {
		params.EpsSi = viper.GetFloat64("eps_si")
	}
	if viper.IsSet("eps_ox") {
		params.EpsOx = viper.GetFloat64("eps_ox")
	}
	return params
}
