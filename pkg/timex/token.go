/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package timex

type TokenType int

const (
	TOK_INVALID TokenType = iota
	TOK_EOF

	TOK_NUMBER
	TOK_WORD
	TOK_DASH
	TOK_COLON
	TOK_COMMA
	TOK_SPACE

	TOK_PAREN_L
	TOK_PAREN_R
)

func (t TokenType) ToString() string {
	switch t {
	case TOK_INVALID:
		return "TOK_INVALID"
	case TOK_EOF:
		return "TOK_EOF"
	case TOK_NUMBER:
		return "TOK_NUMBER"
	case TOK_WORD:
		return "TOK_WORD"
	case TOK_DASH:
		return "TOK_DASH"
	case TOK_COLON:
		return "TOK_COLON"
	case TOK_COMMA:
		return "TOK_COMMA"
	case TOK_SPACE:
		return "TOK_SPACE"
	case TOK_PAREN_L:
		return "TOK_PAREN_L"
	case TOK_PAREN_R:
		return "TOK_PAREN_R"
	}
	return "UNKNOWN"
}
