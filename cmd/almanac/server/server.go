/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dburkart/almanac/cmd/almanac/common"
	"github.com/dburkart/almanac/pkg/server"
)

var Command = &cobra.Command{
	Use:   "server",
	Short: "Serve extraction and resolution over the almanac protocol",

	Run: func(cmd *cobra.Command, args []string) {
		logger := viper.Get("logger").(zerolog.Logger)

		e, err := common.Engine(logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("unable to load locales")
		}

		limiter := server.NewLimiter(
			viper.GetFloat64("almanac.server.rate-limit"),
			viper.GetInt("almanac.server.burst"),
		)

		// Initialize the engine server
		srv := server.New(
			logger,
			e,
			viper.GetInt("almanac.port"),
			viper.GetInt("almanac.prom-port"),
			limiter,
		)

		// Serve the engine
		go func() {
			if err := srv.ServeEngine(); err != nil {
				logger.Fatal().Err(err).Msg("engine server stopped")
			}
		}()

		// Serve the metrics endpoint
		srv.ServeMetrics()
	},
}

func init() {
	// Flags for this command
	Command.Flags().IntP("port", "p", 8001, "Server port for requests")
	Command.Flags().Int("prom-port", 2112, "Set the port for /metrics")
	Command.Flags().Float64("rate-limit", 0, "Requests per second allowed for each client host (0 disables)")
	Command.Flags().Int("burst", 20, "Burst of requests allowed above the rate limit")

	// Bind flags to viper
	viper.BindPFlag("almanac.port", Command.Flags().Lookup("port"))
	viper.BindPFlag("almanac.prom-port", Command.Flags().Lookup("prom-port"))
	viper.BindPFlag("almanac.server.rate-limit", Command.Flags().Lookup("rate-limit"))
	viper.BindPFlag("almanac.server.burst", Command.Flags().Lookup("burst"))
}
