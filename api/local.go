/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package almanac

import (
	"github.com/pkg/errors"

	"github.com/dburkart/almanac/pkg/engine"
	"github.com/dburkart/almanac/pkg/proto"
	"github.com/dburkart/almanac/pkg/server"
)

// LocalClient answers requests with an in-process engine, exactly as a
// server would.
type LocalClient struct {
	commands

	target  proto.ConnectionString
	engine  *engine.Engine
	metrics server.MetricsStore
}

func NewLocalClient(e *engine.Engine) *LocalClient {
	client := &LocalClient{
		engine:  e,
		metrics: server.NewMetricsStore(),
		target:  proto.ConnectionString{Local: true, Address: "local"},
	}
	client.commands = commands{sender: client}
	return client
}

func (client *LocalClient) Open(target proto.ConnectionString, _ uint) error {
	if target.Culture != "" {
		if _, err := client.engine.Culture(target.Culture); err != nil {
			return err
		}
	}
	client.target = target
	client.commands.culture = target.Culture
	return nil
}

func (client *LocalClient) Close() error {
	return nil
}

func (client *LocalClient) Send(message proto.Message) (proto.Message, error) {
	switch message.Command() {
	case proto.CommandVersion:
		var versionReq proto.VersionRequest
		err := proto.Unmarshal(message.Data(), &versionReq)
		if err != nil {
			return proto.NewErrMessage(proto.CodeBadRequest, err), nil
		}
		return server.VersionResponse(versionReq), nil
	case proto.CommandExtract:
		var extractReq proto.ExtractRequest
		err := proto.Unmarshal(message.Data(), &extractReq)
		if err != nil {
			return proto.NewErrMessage(proto.CodeBadRequest, err), nil
		}
		return server.ExtractResponse(client.engine, client.metrics, extractReq), nil
	case proto.CommandRecognize:
		var recognizeReq proto.RecognizeRequest
		err := proto.Unmarshal(message.Data(), &recognizeReq)
		if err != nil {
			return proto.NewErrMessage(proto.CodeBadRequest, err), nil
		}
		return server.RecognizeResponse(client.engine, client.metrics, recognizeReq), nil
	case proto.CommandResolve:
		var resolveReq proto.ResolveRequest
		err := proto.Unmarshal(message.Data(), &resolveReq)
		if err != nil {
			return proto.NewErrMessage(proto.CodeBadRequest, err), nil
		}
		return server.ResolveResponse(client.engine, client.metrics, resolveReq), nil
	case proto.CommandOffset:
		var offsetReq proto.OffsetRequest
		err := proto.Unmarshal(message.Data(), &offsetReq)
		if err != nil {
			return proto.NewErrMessage(proto.CodeBadRequest, err), nil
		}
		return server.OffsetResponse(client.engine, client.metrics, offsetReq), nil
	case proto.CommandCultures:
		return server.CulturesResponse(client.engine, client.metrics, proto.CulturesRequest{}), nil
	default:
		return proto.NewErrMessage(
			proto.CodeUnknownCommand,
			errors.Errorf("Unknown command: %s", message.Command()),
		), nil
	}
}
