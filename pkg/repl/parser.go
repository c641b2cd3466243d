/*
 * Copyright (c) 2022, Gideon Williams gideon@gideonw.com
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package repl

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"

	"github.com/dburkart/almanac/pkg/proto"
)

// Session is the state a REPL carries between lines.
type Session struct {
	Culture   string
	Reference string
}

// ParseREPLCommand parses input from the command line
//
// This function assumes there is no '\n'
func ParseREPLCommand(b []byte, s Session) (proto.Message, error) {
	var msg proto.Message
	b = bytes.TrimSpace(b)

	// all commands have a space after them, if not then they are command only
	// like CULTURES
	cmd, data := b, []byte{}
	if ind := bytes.IndexByte(b, ' '); ind != -1 {
		cmd, data = b[:ind], bytes.TrimSpace(b[ind+1:])
	}

	command := strings.ToUpper(string(cmd))
	switch command {
	case proto.CommandExtract, proto.CommandRecognize:
		if len(data) == 0 {
			return nil, errors.Errorf("%s needs some text", strings.ToLower(command))
		}
		req := proto.ExtractRequest{
			Text:      string(data),
			Culture:   s.Culture,
			Reference: s.Reference,
		}
		if command == proto.CommandExtract {
			msg = proto.NewMessageWithType(command, req)
		} else {
			msg = proto.NewMessageWithType(command, proto.RecognizeRequest(req))
		}

	case proto.CommandResolve:
		timexes := strings.Fields(string(data))
		if len(timexes) == 0 {
			return nil, errors.New("resolve needs at least one TIMEX value")
		}
		msg = proto.NewMessageWithType(command, proto.ResolveRequest{
			Timex:     timexes,
			Reference: s.Reference,
		})

	case proto.CommandOffset:
		if len(data) == 0 {
			return nil, errors.New("offset needs timezone text")
		}
		msg = proto.NewMessageWithType(command, proto.OffsetRequest{
			Text:    string(data),
			Culture: s.Culture,
		})

	case proto.CommandCultures:
		msg = proto.NewMessageWithType(command, proto.CulturesRequest{})

	case proto.CommandVersion:
		msg = proto.NewMessageWithType(command, proto.VersionRequest{Version: proto.Version})

	default:
		msg = proto.NewMessage(string(cmd), data)
	}

	return msg, nil
}
