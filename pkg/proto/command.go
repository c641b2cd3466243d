/*
 * Copyright (c) 2022, Gideon Williams gideon@gideonw.com
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package proto

var (
	// CommandOk acknowledges a request that has no response body. Requests
	// with a body are answered under their own command word.
	CommandOk = "OK"
	// CommandError reports a failed request
	CommandError = "ERR"
	// CommandVersion announces the protocol version
	CommandVersion = "VERSION"
	// CommandExtract finds temporal spans in text
	CommandExtract = "EXTRACT"
	// CommandRecognize finds temporal spans and resolves them
	CommandRecognize = "RECOGNIZE"
	// CommandResolve resolves TIMEX strings
	CommandResolve = "RESOLVE"
	// CommandOffset parses timezone text into an offset
	CommandOffset = "OFFSET"
	// CommandCultures lists the cultures the server can serve
	CommandCultures = "CULTURES"
)

// Commands lists every request command, for completion.
var Commands = []string{
	CommandExtract,
	CommandRecognize,
	CommandResolve,
	CommandOffset,
	CommandCultures,
	CommandVersion,
}
