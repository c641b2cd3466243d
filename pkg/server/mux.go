/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dburkart/almanac/pkg/proto"
)

// maxLineSize bounds a single request line.
const maxLineSize = 1 << 20

type MessageMux interface {
	ServeMessage(w io.Writer, msg proto.Message)
	Handle(s string, f HandleMessage)
}

type HandleMessage func(io.Writer, proto.Message)

type MapMux struct {
	handlers map[string]HandleMessage
}

func NewMapMux() MessageMux {
	return &MapMux{
		handlers: make(map[string]HandleMessage),
	}
}

func (mm *MapMux) ServeMessage(w io.Writer, msg proto.Message) {
	f, ok := mm.handlers[msg.Command()]
	if !ok {
		proto.NewResponseWriter(w).WriteMessage(proto.MessageErrorUnknownCommand)
		return
	}
	f(w, msg)
}

func (mm *MapMux) Handle(s string, f HandleMessage) {
	mm.handlers[s] = f
}

type MessageServer struct {
	log     zerolog.Logger
	metrics MetricsStore
	limiter *Limiter
}

// NewMessageServer returns a server for the line protocol. A nil limiter
// serves every request.
func NewMessageServer(log zerolog.Logger, metrics MetricsStore, limiter *Limiter) *MessageServer {
	return &MessageServer{log: log, metrics: metrics, limiter: limiter}
}

func (ms *MessageServer) ListenAndServe(port int, mux MessageMux) error {
	sock, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		ms.log.Error().Err(err).Int("port", port).Msg("unable to listen on port")
		return err
	}
	ms.log.Info().Int("port", port).Msg("listening for client connections")
	return ms.Serve(sock, mux)
}

// Serve accepts connections on l until it is closed.
func (ms *MessageServer) Serve(l net.Listener, mux MessageMux) error {
	for {
		c, err := l.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			ms.log.Error().Err(err).Msg("unable to accept connection")
			continue
		}

		ms.metrics.IncClientConnection()
		go newConn(ms, mux).Handle(c)
	}
}

type conn struct {
	log    zerolog.Logger
	server *MessageServer
	mux    MessageMux
}

func newConn(ms *MessageServer, mux MessageMux) *conn {
	return &conn{
		log:    ms.log,
		server: ms,
		mux:    mux,
	}
}

func (c *conn) Handle(nc net.Conn) {
	defer nc.Close()

	remote := nc.RemoteAddr().String()
	host, _, err := net.SplitHostPort(remote)
	if err != nil {
		host = remote
	}
	c.log = c.log.With().Str("conn", uuid.NewString()).Str("remote", remote).Logger()
	c.log.Debug().Msg("client connected")

	scanner := bufio.NewScanner(nc)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	out := bufio.NewWriter(nc)
	rw := proto.NewResponseWriter(out)

	for scanner.Scan() {
		line := scanner.Bytes()
		c.log.Trace().Int("read", len(line)).Msg("read from conn")

		msg, err := proto.ParseMessage(line)
		switch {
		case err != nil:
			c.log.Error().Err(err).Msg("error parsing message")
			rw.WriteMessage(proto.NewErrMessage(proto.CodeBadRequest, err))
		case !c.server.limiter.Allow(host):
			c.server.metrics.IncRateLimited()
			rw.WriteMessage(proto.MessageErrorRateLimited)
		default:
			c.log.Debug().Object("msg", msg).Msg("parsed message")
			start := time.Now()
			c.mux.ServeMessage(out, msg)
			c.server.metrics.ObserveRequestSeconds(msg.Command(), time.Since(start))
		}

		if err := out.Flush(); err != nil {
			c.log.Error().Err(err).Msg("unable to write response")
			return
		}
	}

	if err := scanner.Err(); err != nil {
		c.log.Error().Err(err).Msg("error reading from the conn")
		return
	}
	c.log.Debug().Msg("client disconnected")
}
