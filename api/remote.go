/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package almanac

import (
	"bufio"
	"io"
	"math"
	"net"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"github.com/dburkart/almanac/pkg/proto"
)

// A RemoteClient holds the connections needed to talk to an almanac server.
type RemoteClient struct {
	commands

	target proto.ConnectionString
	conn   chan *remoteConn
}

type remoteConn struct {
	net.Conn
	r *bufio.Reader
}

func dial(address string) (*remoteConn, error) {
	c, err := net.Dial("tcp", address)
	if err != nil {
		return nil, err
	}
	rc := &remoteConn{Conn: c, r: bufio.NewReader(c)}
	if err := rc.handshake(); err != nil {
		c.Close()
		return nil, err
	}
	return rc, nil
}

// handshake sends a version advertisement and checks the server accepts it.
func (c *remoteConn) handshake() error {
	b, _ := proto.NewMessageWithType(proto.CommandVersion, proto.VersionRequest{Version: proto.Version}).Marshal()
	if _, err := c.Write(b); err != nil {
		return errors.Wrap(err, "unable to send version")
	}
	m, err := proto.ReadMessage(c.r)
	if err != nil {
		return errors.Wrap(err, "unable to parse server version response")
	}
	version := proto.VersionResponse{}
	if err := proto.Decode(m, &version); err != nil {
		return errors.Wrap(err, "unable to unmarshal version response")
	}
	if version.Code != proto.CodeOk {
		return errors.New("server rejected client version")
	}
	return nil
}

func (client *RemoteClient) reconnectWithBackoff() (*remoteConn, error) {
	var conn *remoteConn
	var err error

	// Try for a total of 7 seconds
	for i := 0; i < 3; i++ {
		delay := time.Duration(math.Exp2(float64(i)))
		time.Sleep(delay * time.Second)
		conn, err = dial(client.target.Address)
		if err == nil {
			break
		}
	}

	return conn, err
}

// reconnect replaces a dead connection. When that fails the dead one is kept
// so the pool never shrinks; the next Send through it retries.
func (client *RemoteClient) reconnect(dead *remoteConn) (*remoteConn, error) {
	dead.Close()
	conn, err := client.reconnectWithBackoff()
	if err != nil {
		return dead, err
	}
	return conn, nil
}

func (client *RemoteClient) Open(connectionString proto.ConnectionString, size uint) error {
	if size == 0 {
		size = 1
	}
	client.target = connectionString
	client.conn = make(chan *remoteConn, size)
	client.commands = commands{sender: client, culture: connectionString.Culture}

	for i := uint(0); i < size; i++ {
		c, err := dial(client.target.Address)
		if err != nil {
			client.Close()
			return errors.Wrapf(err, "unable to connect to %s", client.target.Address)
		}
		client.conn <- c
	}

	return nil
}

// Close closes the pooled connections. It must not race with Send.
func (client *RemoteClient) Close() error {
	if client.conn == nil {
		return nil
	}

	var first error
	for {
		select {
		case conn := <-client.conn:
			if err := conn.Close(); err != nil && first == nil {
				first = err
			}
		default:
			client.conn = nil
			return first
		}
	}
}

// Send a general message to the almanac server.
func (client *RemoteClient) Send(m proto.Message) (proto.Message, error) {
	data, err := m.Marshal()
	if err != nil {
		return nil, err
	}

	conn := <-client.conn
	defer func() {
		client.conn <- conn
	}()

retry:
	_, err = conn.Write(data)
	if err != nil {
		// Handle peer reset with reconnect logic
		if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.EPIPE) {
			if conn, err = client.reconnect(conn); err != nil {
				return nil, err
			}
			// We use a goto here because we need to retry sending our message,
			// however, if we recursively call Send() we'll end up with a
			// duplicated net.Conn in our connection pool.
			goto retry
		} else {
			return nil, err
		}
	}

	resp, err := proto.ReadMessage(conn.r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			if conn, err = client.reconnect(conn); err != nil {
				return nil, err
			}
			goto retry
		}
		return nil, err
	}
	return resp, nil
}
