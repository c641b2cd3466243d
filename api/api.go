/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package almanac

import (
	"github.com/dburkart/almanac/pkg/engine"
	"github.com/dburkart/almanac/pkg/proto"
)

// NewClient creates a new Client which can be used to talk to an almanac
// server, or to an in-process engine for "local" connection strings. The
// client is thread safe, but only holds one connection at a time. For a
// client pool, use NewClientPool instead.
func NewClient(connstr string) (Client, error) {
	client, err := NewClientPool(connstr, 1)
	if err != nil {
		return nil, err
	}

	return client, nil
}

// NewClientPool creates a new Client which holds a pool of net.Conn
// resources open to a remote almanac server. This is useful for sending large
// volumes of requests.
func NewClientPool(connstr string, size uint) (Client, error) {
	var client Client
	var err error

	target, err := proto.ParseConnectionString(connstr)
	if err != nil {
		return nil, err
	}

	if target.Local {
		client = NewLocalClient(engine.New(nil))
	} else {
		client = &RemoteClient{}
	}

	err = client.Open(target, size)
	if err != nil {
		return nil, err
	}

	return client, nil
}
