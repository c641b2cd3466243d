/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package almanac

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dburkart/almanac/cmd/almanac/bench"
	"github.com/dburkart/almanac/cmd/almanac/client"
	"github.com/dburkart/almanac/cmd/almanac/extract"
	"github.com/dburkart/almanac/cmd/almanac/local"
	"github.com/dburkart/almanac/cmd/almanac/resolve"
	"github.com/dburkart/almanac/cmd/almanac/server"
	"github.com/dburkart/almanac/pkg/engine"
	"github.com/dburkart/almanac/pkg/locale"
)

var (
	Version        = "develop"
	CommitHash     = "n/a"
	BuildTimestamp = "n/a"

	rootCmd = &cobra.Command{
		Use:   "almanac",
		Short: "Almanac finds dates and times in text and resolves them",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLogging()
			initLogLevel()
			initConfig(cmd.Root().PersistentFlags().Lookup("config").Value.String())
			initLogLevel()
			traceConfig()
		},
		Version: Version,
	}
)

func init() {
	// Configure the root binary options
	rootCmd.PersistentFlags().CountP("verbose", "v", "-v for debug logs (-vv for trace)")
	rootCmd.PersistentFlags().Bool("local", true, "Configures the logger to print readable logs")
	rootCmd.PersistentFlags().StringP("host", "H", "local", "Where to send requests: local, local:<culture> or almanac://host:port[/culture]")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the almanac config file (default ./config.toml)")
	rootCmd.PersistentFlags().String("culture", "", fmt.Sprintf("Culture of the input text (default %s)", locale.DefaultCulture))
	rootCmd.PersistentFlags().String("ref", "", "Reference instant, RFC 3339 or YYYY-MM-DD (default now)")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format of results [csv, json, text]")
	rootCmd.PersistentFlags().String("locales", "", "Directory of extra locale bundles (*.yaml)")

	// Bind viper config to the root flags
	viper.BindPFlag("almanac.local", rootCmd.PersistentFlags().Lookup("local"))
	viper.BindPFlag("almanac.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("almanac.host", rootCmd.PersistentFlags().Lookup("host"))
	viper.BindPFlag("almanac.culture", rootCmd.PersistentFlags().Lookup("culture"))
	viper.BindPFlag("almanac.reference", rootCmd.PersistentFlags().Lookup("ref"))
	viper.BindPFlag("almanac.output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("almanac.locale.directory", rootCmd.PersistentFlags().Lookup("locales"))
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	viper.SetDefault("almanac.cache.expiry", engine.DefaultCacheExpiry)

	rootCmd.SetVersionTemplate(fmt.Sprintf("almanac version: %s git_commit: %s build_time: %s\n", Version, CommitHash, BuildTimestamp))

	viper.AutomaticEnv()

	// Register commands on the root binary command
	for _, cmd := range []*cobra.Command{
		extract.Command,
		resolve.Command,
		local.Command,
		client.Command,
		server.Command,
		bench.Command,
	} {
		cmd.Version = rootCmd.Version
		rootCmd.AddCommand(cmd)
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("root command failed")
		os.Exit(1)
	}
}
