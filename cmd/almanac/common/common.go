/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

// Package common holds the setup shared by the almanac subcommands.
package common

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	almanac "github.com/dburkart/almanac/api"
	"github.com/dburkart/almanac/pkg/engine"
	"github.com/dburkart/almanac/pkg/locale"
	"github.com/dburkart/almanac/pkg/proto"
	"github.com/dburkart/almanac/pkg/repl"
)

var Outputs = []string{"csv", "json", "text"}

// Engine builds an engine from the embedded locale bundles plus any found in
// almanac.locale.directory.
func Engine(log zerolog.Logger) (*engine.Engine, error) {
	registry := locale.Default()

	if dir := viper.GetString("almanac.locale.directory"); dir != "" {
		bundles, err := locale.LoadDir(dir)
		if err != nil {
			return nil, err
		}
		registry = registry.With(bundles...)
		log.Debug().Str("directory", dir).Int("bundles", len(bundles)).Msg("loaded locale bundles")
	}

	return engine.New(registry,
		engine.WithLogger(log),
		engine.WithCacheExpiry(viper.GetDuration("almanac.cache.expiry")),
	), nil
}

// Target parses almanac.host. A culture set with --culture wins over the one
// in the connection string.
func Target() (proto.ConnectionString, error) {
	target, err := proto.ParseConnectionString(viper.GetString("almanac.host"))
	if err != nil {
		return target, err
	}
	if culture := viper.GetString("almanac.culture"); culture != "" {
		target.Culture = culture
	}
	return target, nil
}

// Client connects to almanac.host. Local connection strings get an
// in-process engine.
func Client(log zerolog.Logger, size uint) (almanac.Client, error) {
	target, err := Target()
	if err != nil {
		return nil, err
	}

	var client almanac.Client
	if target.Local {
		e, err := Engine(log)
		if err != nil {
			return nil, err
		}
		client = almanac.NewLocalClient(e)
	} else {
		client = &almanac.RemoteClient{}
	}

	if err := client.Open(target, size); err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", target.Address)
	}
	return client, nil
}

// Reference returns almanac.reference, or the zero time for "now".
func Reference() (time.Time, error) {
	return proto.ParseReference(viper.GetString("almanac.reference"))
}

func Writer(w io.Writer) (repl.OutputWriter, error) {
	output := viper.GetString("almanac.output")
	for _, o := range Outputs {
		if o == output {
			ref, err := Reference()
			if err != nil {
				return nil, err
			}
			return repl.NewOutputWriter(w, output, ref), nil
		}
	}
	return nil, errors.Errorf("unsupported output format %q", output)
}

type printable interface {
	proto.Printable
	proto.Unmarshaler
}

// Decode decodes the reply to a request made with the given command.
func Decode(request string, msg proto.Message) (proto.Printable, error) {
	var p printable
	switch request {
	case proto.CommandExtract:
		p = &proto.ExtractResponse{}
	case proto.CommandRecognize:
		p = &proto.RecognizeResponse{}
	case proto.CommandResolve:
		p = &proto.ResolveResponse{}
	case proto.CommandOffset:
		p = &proto.OffsetResponse{}
	case proto.CommandCultures:
		p = &proto.CulturesResponse{}
	case proto.CommandVersion:
		p = &proto.VersionResponse{}
	default:
		if err := proto.Decode(msg, &proto.OkResponse{}); err != nil {
			return nil, err
		}
		return nil, errors.Errorf("unexpected reply %s to %s", msg.Command(), request)
	}

	if err := proto.Decode(msg, p); err != nil {
		return nil, err
	}
	return p, nil
}
