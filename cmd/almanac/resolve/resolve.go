/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package resolve

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dburkart/almanac/cmd/almanac/common"
	"github.com/dburkart/almanac/pkg/proto"
)

var Command = &cobra.Command{
	Use:     "resolve timex...",
	Short:   "Resolve TIMEX values to concrete dates and times",
	Example: "  almanac resolve XXXX-WXX-3 --ref 2023-06-14\n  almanac resolve \"(2023-06-11,2023-06-14,P3D)\"",
	Args:    cobra.MinimumNArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		log := viper.Get("logger").(zerolog.Logger)

		ref, err := common.Reference()
		if err != nil {
			return err
		}

		writer, err := common.Writer(cmd.OutOrStdout())
		if err != nil {
			return err
		}

		client, err := common.Client(log, 1)
		if err != nil {
			return err
		}
		defer client.Close()

		entries, err := client.Resolve(ref, args...)
		if err != nil {
			return err
		}
		return writer.Write(proto.ResolveResponse{Entries: entries})
	},
}
