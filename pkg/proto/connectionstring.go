/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package proto

import (
	"net/url"
	"path"

	"github.com/pkg/errors"
)

var Protocol = "almanac"

type ConnectionString struct {
	Local   bool
	Address string
	Culture string
}

// ParseConnectionString takes a connection string and parses it into the parts
// the application needs to make a connection. An empty culture means the
// serving side's default.
//
// Formats:
//
//	local
//	local:<culture>
//	almanac://<host:port>[/<culture>]
func ParseConnectionString(connStr string) (ConnectionString, error) {
	ret := ConnectionString{
		Local:   true,
		Address: "local",
	}

	if connStr == "" || connStr == "local" {
		return ret, nil
	}

	u, err := url.Parse(connStr)
	if err != nil {
		return ConnectionString{}, errors.Wrapf(err, "invalid connection string %q", connStr)
	}

	switch u.Scheme {
	case "local":
		ret.Culture = u.Opaque
		return ret, nil
	case Protocol:
		if u.Host == "" {
			return ConnectionString{}, errors.Errorf("missing address in %q", connStr)
		}
		ret.Local = false
		ret.Address = u.Host
		d, p := path.Split(u.Path)
		if d != "" && d != "/" {
			return ConnectionString{}, errors.Errorf("invalid culture %s", u.Path)
		}
		ret.Culture = p
		return ret, nil
	}

	return ConnectionString{}, errors.Errorf("unrecognized scheme: %s", u.Scheme)
}
