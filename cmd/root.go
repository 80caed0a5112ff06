// Copyright © 2024 The libadalang-go authors

// Package cmd implements the lal command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lal",
	Short: "lal — Ada semantic navigation",
	Long: `lal parses Ada compilation units and answers semantic queries over
them: scoped name lookup, on-demand loading of referenced units, and
correspondence between declarations that model one logical entity
(specification and body, generic wrapper and wrapped declaration,
private and full type view).

Getting started:
  lal repl p.ads p.adb         Explore units interactively
  lal nav p.ads                Dump every declaration of a unit
  lal keywords --dialect=95    List reserved words under Ada 95

Referenced units are located on the source path using GNAT default file
naming: the unit name in lower case with dots replaced by dashes, with
extension .ads for specifications and .adb for bodies.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.lal.yaml)")
	rootCmd.PersistentFlags().String("dialect", "Ada_2012", "language revision for keyword classification")
	rootCmd.PersistentFlags().StringSlice("source-path", []string{"."}, "directories searched for referenced units")
	rootCmd.PersistentFlags().String("profile", "", `trace query evaluation: "otel", "opencensus", or "pprof"`)

	for _, flag := range []string{"dialect", "source-path", "profile"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".lal" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".lal")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
