/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package almanac

import (
	"time"

	"github.com/dburkart/almanac/pkg/engine"
	"github.com/dburkart/almanac/pkg/extract"
	"github.com/dburkart/almanac/pkg/proto"
	"github.com/dburkart/almanac/pkg/resolve"
	"github.com/dburkart/almanac/pkg/timezone"
)

type Client interface {
	Open(proto.ConnectionString, uint) error
	Close() error
	Send(proto.Message) (proto.Message, error)

	Extract(text string, ref time.Time) ([]extract.Span, error)
	Recognize(text string, ref time.Time) ([]engine.Recognition, error)
	Resolve(ref time.Time, timex ...string) ([]resolve.Entry, error)
	Offset(text string) (timezone.Offset, error)
	Cultures() ([]string, error)
}

type sender interface {
	Send(proto.Message) (proto.Message, error)
}

// commands implements the typed requests of Client on top of Send. Requests
// use the culture of the connection string.
type commands struct {
	sender  sender
	culture string
}

func reference(ref time.Time) string {
	if ref.IsZero() {
		return ""
	}
	return ref.Format(time.RFC3339)
}

func (c commands) call(m proto.Message, resp proto.Unmarshaler) error {
	reply, err := c.sender.Send(m)
	if err != nil {
		return err
	}
	return proto.Decode(reply, resp)
}

// Extract finds the temporal spans in text.
func (c commands) Extract(text string, ref time.Time) ([]extract.Span, error) {
	resp := proto.ExtractResponse{}
	err := c.call(proto.NewMessageWithType(proto.CommandExtract, proto.ExtractRequest{
		Text:      text,
		Culture:   c.culture,
		Reference: reference(ref),
	}), &resp)
	return resp.Spans, err
}

// Recognize finds the temporal spans in text and resolves them.
func (c commands) Recognize(text string, ref time.Time) ([]engine.Recognition, error) {
	resp := proto.RecognizeResponse{}
	err := c.call(proto.NewMessageWithType(proto.CommandRecognize, proto.RecognizeRequest{
		Text:      text,
		Culture:   c.culture,
		Reference: reference(ref),
	}), &resp)
	return resp.Results, err
}

// Resolve resolves canonical TIMEX strings.
func (c commands) Resolve(ref time.Time, timex ...string) ([]resolve.Entry, error) {
	resp := proto.ResolveResponse{}
	err := c.call(proto.NewMessageWithType(proto.CommandResolve, proto.ResolveRequest{
		Timex:     timex,
		Reference: reference(ref),
	}), &resp)
	return resp.Entries, err
}

// Offset parses timezone text.
func (c commands) Offset(text string) (timezone.Offset, error) {
	resp := proto.OffsetResponse{}
	err := c.call(proto.NewMessageWithType(proto.CommandOffset, proto.OffsetRequest{
		Text:    text,
		Culture: c.culture,
	}), &resp)
	if err != nil {
		return timezone.Offset{Minutes: timezone.InvalidOffset}, err
	}
	return resp.Offset, nil
}

func (c commands) Cultures() ([]string, error) {
	resp := proto.CulturesResponse{}
	err := c.call(proto.NewMessageWithType(proto.CommandCultures, proto.CulturesRequest{}), &resp)
	return resp.Cultures, err
}
