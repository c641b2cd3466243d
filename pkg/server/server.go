/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dburkart/almanac/pkg/engine"
	"github.com/dburkart/almanac/pkg/proto"
)

type Server struct {
	log     zerolog.Logger
	metrics MetricsStore

	engine      *engine.Engine
	limiter     *Limiter
	port        int
	metricsPort int
}

func New(log zerolog.Logger, e *engine.Engine, port, metricsPort int, limiter *Limiter) Server {
	metrics := NewMetricsStore()
	metrics.RegisterCollector(NewEngineStatsCollector(e))

	return Server{
		log:         log,
		metrics:     metrics,
		engine:      e,
		limiter:     limiter,
		port:        port,
		metricsPort: metricsPort,
	}
}

// handle decodes the payload of a message into a request of type T and
// writes the reply f builds for it.
func handle[T any, PT interface {
	*T
	proto.Unmarshaler
}](f func(T) proto.Message) HandleMessage {
	return func(w io.Writer, msg proto.Message) {
		var req T
		rw := proto.NewResponseWriter(w)
		if err := PT(&req).Unmarshal(msg.Data()); err != nil {
			rw.WriteMessage(proto.NewErrMessage(proto.CodeBadRequest, err))
			return
		}
		rw.WriteMessage(f(req))
	}
}

// Mux routes every protocol command to the engine.
func (s *Server) Mux() MessageMux {
	mux := NewMapMux()

	mux.Handle(proto.CommandVersion, handle(VersionResponse))

	mux.Handle(proto.CommandExtract, handle(func(rq proto.ExtractRequest) proto.Message {
		return ExtractResponse(s.engine, s.metrics, rq)
	}))

	mux.Handle(proto.CommandRecognize, handle(func(rq proto.RecognizeRequest) proto.Message {
		return RecognizeResponse(s.engine, s.metrics, rq)
	}))

	mux.Handle(proto.CommandResolve, handle(func(rq proto.ResolveRequest) proto.Message {
		return ResolveResponse(s.engine, s.metrics, rq)
	}))

	mux.Handle(proto.CommandOffset, handle(func(rq proto.OffsetRequest) proto.Message {
		return OffsetResponse(s.engine, s.metrics, rq)
	}))

	mux.Handle(proto.CommandCultures, handle(func(rq proto.CulturesRequest) proto.Message {
		return CulturesResponse(s.engine, s.metrics, rq)
	}))

	return mux
}

func (s *Server) ServeEngine() error {
	s.log.Info().Int("port", s.port).Strs("cultures", s.engine.Cultures()).Msg("serving almanac")

	srv := NewMessageServer(s.log, s.metrics, s.limiter)
	return srv.ListenAndServe(s.port, s.Mux())
}

func (s *Server) ServeMetrics() {
	s.log.Info().Int("port", s.metricsPort).Msg("/metrics endpoint started")

	mux := http.NewServeMux()
	mux.Handle("/metrics", s.metrics.Handler())
	err := http.ListenAndServe(fmt.Sprintf(":%d", s.metricsPort), mux)
	if err != nil {
		s.log.Error().Err(err).Msg("metrics endpoint stopped")
	}
}
