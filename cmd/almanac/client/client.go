/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package client

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	almanac "github.com/dburkart/almanac/api"
	"github.com/dburkart/almanac/cmd/almanac/common"
	"github.com/dburkart/almanac/pkg/proto"
	"github.com/dburkart/almanac/pkg/repl"
)

var Command = &cobra.Command{
	Use:   "client",
	Short: "Interactive terminal for extracting and resolving with a server",

	Run: func(cmd *cobra.Command, args []string) {
		log := viper.Get("logger").(zerolog.Logger)

		target, err := common.Target()
		if err != nil {
			log.Fatal().Err(err).Msg("error parsing URL")
		}

		client, err := common.Client(log, 1)
		if err != nil {
			log.Fatal().Err(err).Str("address", target.Address).Msg("unable to connect to server")
		}
		defer client.Close()

		if err := Prompt(log, client, repl.Session{
			Culture:   target.Culture,
			Reference: viper.GetString("almanac.reference"),
		}); err != nil {
			log.Fatal().Err(err).Send()
		}
	},
}

func listCultures(c almanac.Client) func(string) []string {
	cultures, err := c.Cultures()
	if err != nil {
		return func(string) []string { return []string{} }
	}
	return func(line string) []string {
		prefix := strings.TrimSpace(strings.TrimPrefix(line, "culture"))
		return filterStringSlice(cultures, prefix)
	}
}

func filterStringSlice(s []string, prefix string) []string {
	retList := []string{}
	for i := range s {
		if strings.HasPrefix(s[i], prefix) {
			retList = append(retList, s[i])
		}
	}
	return retList
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// session handles the lines that change REPL state instead of being sent.
func session(line string, s *repl.Session, out io.Writer) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true, nil
	}

	switch strings.ToLower(fields[0]) {
	case "culture":
		if len(fields) == 1 {
			fmt.Fprintln(out, s.Culture)
			return true, nil
		}
		s.Culture = fields[1]
		return true, nil
	case "ref":
		if len(fields) == 1 {
			fmt.Fprintln(out, s.Reference)
			return true, nil
		}
		value := strings.Join(fields[1:], " ")
		if value == "now" {
			value = ""
		}
		if _, err := proto.ParseReference(value); err != nil {
			return true, err
		}
		s.Reference = value
		return true, nil
	}
	return false, nil
}

// Prompt runs the interactive loop against c until the user exits.
func Prompt(log zerolog.Logger, c almanac.Client, s repl.Session) error {
	// Configure the completer
	completer := readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("extract"),
		readline.PcItem("recognize"),
		readline.PcItem("resolve"),
		readline.PcItem("offset"),
		readline.PcItem("cultures"),
		readline.PcItem("version"),
		readline.PcItem("culture", readline.PcItemDynamic(listCultures(c))),
		readline.PcItem("ref", readline.PcItem("now")),
		readline.PcItem("exit"),
	)

	// Setup the readline executor
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31m>\033[0m ",
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	// Handle input
	for {
		ln := rl.Line()
		if ln.CanContinue() {
			continue
		} else if ln.CanBreak() {
			break
		}
		line := strings.TrimSpace(ln.Line)

		if strings.ToUpper(line) == "HELP" {
			fmt.Println("usage:")
			fmt.Println(completer.Tree("    "))
			continue
		}
		if strings.ToUpper(line) == "EXIT" {
			break
		}

		handled, err := session(line, &s, os.Stdout)
		if err != nil {
			log.Error().Err(err).Send()
			continue
		}
		if handled {
			continue
		}

		replMsg, err := repl.ParseREPLCommand([]byte(line), s)
		if err != nil {
			log.Error().Err(err).Send()
			continue
		}

		msg, err := c.Send(replMsg)
		if err != nil {
			return err
		}

		ref, _ := proto.ParseReference(s.Reference)
		writer := repl.NewOutputWriter(os.Stdout, viper.GetString("almanac.output"), ref)

		p, err := common.Decode(replMsg.Command(), msg)
		if err != nil {
			if e, ok := err.(proto.ErrResponse); ok {
				fmt.Println(e.Code, e.Err)
			} else {
				log.Error().Err(err).Send()
			}
			continue
		}
		if err := writer.Write(p); err != nil {
			log.Error().Err(err).Send()
		}
		fmt.Println()
	}
	rl.Clean()
	return nil
}
