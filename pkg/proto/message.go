/*
 * Copyright (c) 2022, Gideon Williams gideon@gideonw.com
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package proto

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// ErrMalformedMessage is returned for a line without a command.
var ErrMalformedMessage = errors.New("malformed message")

// Message is one line of the protocol: a command, optionally followed by a
// space and a payload.
type Message interface {
	Command() string
	Data() []byte
	Marshaler
	zerolog.LogObjectMarshaler
}

type message struct {
	command string
	data    []byte
}

func NewMessage(command string, data []byte) Message {
	return message{command: strings.ToUpper(command), data: data}
}

// NewMessageWithType marshals t as the payload of command. A payload that
// fails to marshal turns the message into an error message.
func NewMessageWithType(command string, t Marshaler) Message {
	b, err := t.Marshal()
	if err != nil {
		return NewErrMessage(CodeInternal, err)
	}
	return NewMessage(command, b)
}

// NewErrMessage builds an ERR message carrying code and err.
func NewErrMessage(code int, err error) Message {
	b, _ := ErrResponse{Code: code, Err: err}.Marshal()
	return NewMessage(CommandError, b)
}

func (m message) Command() string { return m.command }
func (m message) Data() []byte    { return m.data }

// Marshal renders the message as a newline terminated line.
func (m message) Marshal() ([]byte, error) {
	if bytes.ContainsAny(m.data, "\r\n") {
		return nil, errors.Errorf("%s payload contains a line break", m.command)
	}
	buf := bytes.NewBufferString(m.command)
	if len(m.data) > 0 {
		buf.WriteByte(' ')
		buf.Write(m.data)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func (m message) MarshalZerologObject(e *zerolog.Event) {
	e.Str("command", m.command).Int("size", len(m.data))
}

// ParseMessage parses one line, with or without its terminator.
func ParseMessage(b []byte) (Message, error) {
	b = bytes.TrimRight(b, "\r\n")
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, ErrMalformedMessage
	}

	ind := bytes.IndexByte(b, ' ')
	if ind == -1 {
		return NewMessage(string(b), nil), nil
	}
	if ind == 0 {
		return nil, ErrMalformedMessage
	}
	return NewMessage(string(b[:ind]), b[ind+1:]), nil
}

// ReadMessage reads the next line from r and parses it.
func ReadMessage(r *bufio.Reader) (Message, error) {
	line, err := r.ReadBytes('\n')
	if err != nil && len(line) == 0 {
		return nil, err
	}
	return ParseMessage(line)
}

type Marshaler interface {
	Marshal() ([]byte, error)
}

type Unmarshaler interface {
	Unmarshal([]byte) error
}

func Marshal(t Marshaler) ([]byte, error) {
	return t.Marshal()
}

func Unmarshal(b []byte, t Unmarshaler) error {
	return t.Unmarshal(b)
}

// Decode unmarshals the payload of m into t. An ERR message decodes into the
// error it carries.
func Decode(m Message, t Unmarshaler) error {
	if m.Command() == CommandError {
		e := ErrResponse{}
		if err := e.Unmarshal(m.Data()); err != nil {
			return err
		}
		return e
	}
	return t.Unmarshal(m.Data())
}
