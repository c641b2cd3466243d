/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"github.com/dburkart/almanac/pkg/engine"
	"github.com/dburkart/almanac/pkg/extract"
	"github.com/dburkart/almanac/pkg/proto"
	"github.com/dburkart/almanac/pkg/resolve"
	"github.com/dburkart/almanac/pkg/timex"
)

func VersionResponse(_ proto.VersionRequest) proto.Message {
	// We don't currently reject any versions, so respond with our own version
	// announcement with an OK code.
	versionResponse := proto.VersionResponse{Code: proto.CodeOk, Version: proto.Version}
	return proto.NewMessageWithType(proto.CommandVersion, versionResponse)
}

func ExtractResponse(e *engine.Engine, m MetricsStore, rq proto.ExtractRequest) proto.Message {
	ref, err := proto.ParseReference(rq.Reference)
	if err != nil {
		return proto.NewErrMessage(proto.CodeBadRequest, err)
	}
	culture, err := e.Culture(rq.Culture)
	if err != nil {
		return proto.NewErrMessage(proto.CodeUnknownCulture, err)
	}
	m.IncRequests(proto.CommandExtract, culture)

	spans, err := e.Extract(culture, rq.Text, ref)
	if err != nil {
		return proto.NewErrMessage(proto.CodeInternal, err)
	}
	m.ObserveSpans(culture, spans)

	return proto.NewMessageWithType(proto.CommandExtract, proto.ExtractResponse{Culture: culture, Spans: spans})
}

func RecognizeResponse(e *engine.Engine, m MetricsStore, rq proto.RecognizeRequest) proto.Message {
	ref, err := proto.ParseReference(rq.Reference)
	if err != nil {
		return proto.NewErrMessage(proto.CodeBadRequest, err)
	}
	culture, err := e.Culture(rq.Culture)
	if err != nil {
		return proto.NewErrMessage(proto.CodeUnknownCulture, err)
	}
	m.IncRequests(proto.CommandRecognize, culture)

	results, err := e.Recognize(culture, rq.Text, ref)
	if err != nil {
		return proto.NewErrMessage(proto.CodeInternal, err)
	}
	for _, r := range results {
		m.ObserveSpans(culture, []extract.Span{r.Span})
		m.ObserveEntries(r.Resolution)
		if r.Offset != nil {
			observeOffset(m, r.Offset.Valid(), r.Offset.Ambiguous)
		}
	}

	return proto.NewMessageWithType(proto.CommandRecognize, proto.RecognizeResponse{Culture: culture, Results: results})
}

// ResolveResponse resolves each TIMEX string on its own so malformed ones
// can be counted; the rest still resolve. Well-formed values that resolve
// to nothing are not malformed.
func ResolveResponse(e *engine.Engine, m MetricsStore, rq proto.ResolveRequest) proto.Message {
	ref, err := proto.ParseReference(rq.Reference)
	if err != nil {
		return proto.NewErrMessage(proto.CodeBadRequest, err)
	}
	m.IncRequests(proto.CommandResolve, "")

	entries := []resolve.Entry{}
	for _, s := range rq.Timex {
		if _, err := timex.Parse(s); err != nil {
			m.IncUnresolved(ReasonMalformed)
			continue
		}
		entries = append(entries, e.Resolve(ref, s)...)
	}
	m.ObserveEntries(entries)

	return proto.NewMessageWithType(proto.CommandResolve, proto.ResolveResponse{Entries: entries})
}

func OffsetResponse(e *engine.Engine, m MetricsStore, rq proto.OffsetRequest) proto.Message {
	culture, err := e.Culture(rq.Culture)
	if err != nil {
		return proto.NewErrMessage(proto.CodeUnknownCulture, err)
	}
	m.IncRequests(proto.CommandOffset, culture)

	offset, err := e.ParseOffset(culture, rq.Text)
	if err != nil {
		return proto.NewErrMessage(proto.CodeInternal, err)
	}
	observeOffset(m, offset.Valid(), offset.Ambiguous)

	return proto.NewMessageWithType(proto.CommandOffset, proto.NewOffsetResponse(rq.Text, offset))
}

func CulturesResponse(e *engine.Engine, m MetricsStore, _ proto.CulturesRequest) proto.Message {
	m.IncRequests(proto.CommandCultures, "")
	return proto.NewMessageWithType(proto.CommandCultures, proto.CulturesResponse{Cultures: e.Cultures()})
}

func observeOffset(m MetricsStore, valid, ambiguous bool) {
	switch {
	case ambiguous:
		m.IncUnresolved(ReasonAmbiguousOffset)
	case !valid:
		m.IncUnresolved(ReasonInvalidOffset)
	}
}
