/*
 * Copyright (c) 2022, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package local

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	almanac "github.com/dburkart/almanac/api"
	"github.com/dburkart/almanac/cmd/almanac/client"
	"github.com/dburkart/almanac/cmd/almanac/common"
	"github.com/dburkart/almanac/pkg/proto"
	"github.com/dburkart/almanac/pkg/repl"
)

var Command = &cobra.Command{
	Use:   "local",
	Short: "Interactive terminal backed by an in-process engine",

	Run: func(cmd *cobra.Command, args []string) {
		log := viper.Get("logger").(zerolog.Logger)

		e, err := common.Engine(log)
		if err != nil {
			log.Fatal().Err(err).Msg("unable to load locales")
		}

		target := proto.ConnectionString{Local: true, Culture: viper.GetString("almanac.culture")}
		c := almanac.NewLocalClient(e)
		if err := c.Open(target, 1); err != nil {
			log.Fatal().Err(err).Str("culture", target.Culture).Msg("unable to open local engine")
		}
		defer c.Close()

		if err := client.Prompt(log, c, repl.Session{
			Culture:   target.Culture,
			Reference: viper.GetString("almanac.reference"),
		}); err != nil {
			log.Fatal().Err(err).Send()
		}
	},
}
