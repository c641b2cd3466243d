/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package extract

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	almanac "github.com/dburkart/almanac/api"
	"github.com/dburkart/almanac/cmd/almanac/common"
	"github.com/dburkart/almanac/pkg/document"
	"github.com/dburkart/almanac/pkg/proto"
)

var Command = &cobra.Command{
	Use:   "extract [text...]",
	Short: "Find the dates, times, durations and timezones in text",
	Long: `Find the dates, times, durations and timezones in text.

The text is taken from the arguments, or read from stdin when there are none.
With --html the first argument names an HTML file to read instead.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		log := viper.Get("logger").(zerolog.Logger)

		text, err := input(args, cmd.InOrStdin(), viper.GetBool("almanac.extract.html"))
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

		p, err := run(client, text, viper.GetBool("almanac.extract.resolve"))
		if err != nil {
			return err
		}
		return writer.Write(p)
	},
}

func init() {
	// Flags for this command
	Command.Flags().Bool("html", false, "Treat the input as HTML and extract from its visible text")
	Command.Flags().BoolP("resolve", "r", false, "Resolve every span to concrete values")

	// Bind flags to viper
	viper.BindPFlag("almanac.extract.html", Command.Flags().Lookup("html"))
	viper.BindPFlag("almanac.extract.resolve", Command.Flags().Lookup("resolve"))
}

func input(args []string, stdin io.Reader, html bool) (string, error) {
	if len(args) > 0 && !html {
		return strings.Join(args, " "), nil
	}

	var r io.Reader = stdin
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			return "", errors.Wrap(err, "unable to open document")
		}
		defer f.Close()
		r = f
	}

	if html {
		return document.VisibleText(r)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", errors.Wrap(err, "unable to read input")
	}
	return string(b), nil
}

func run(client almanac.Client, text string, resolve bool) (proto.Printable, error) {
	ref, err := common.Reference()
	if err != nil {
		return nil, err
	}

	if resolve {
		results, err := client.Recognize(text, ref)
		if err != nil {
			return nil, err
		}
		return proto.RecognizeResponse{Results: results}, nil
	}

	spans, err := client.Extract(text, ref)
	if err != nil {
		return nil, err
	}
	return proto.ExtractResponse{Spans: spans}, nil
}
