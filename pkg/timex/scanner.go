/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package timex

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dburkart/almanac/pkg/common/parse"
)

type Scanner struct {
	Input string
	Start int
	Pos   int
}

// MatchNumber returns the length of the next token, assuming it is a
// number.
//
// Grammar:
//
//	number          = 1*DIGIT [ "." 1*DIGIT ]
func (s *Scanner) MatchNumber() int {
	size := s.matchDigits(s.Pos)
	if size == 0 {
		return 0
	}

	if strings.HasPrefix(s.Input[s.Pos+size:], ".") {
		fraction := s.matchDigits(s.Pos + size + 1)
		if fraction > 0 {
			size += fraction + 1
		}
	}

	return size
}

func (s *Scanner) matchDigits(pos int) int {
	size := 0
	for pos+size < len(s.Input) {
		r, width := utf8.DecodeRuneInString(s.Input[pos+size:])
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			break
		}
		size += width
	}
	return size
}

// MatchWord returns the length of the next token, assuming it is a word.
// Words carry designators ("T", "P", "W"), codes ("NI", "SU") and unknown
// placeholders ("XXXX").
//
// Grammar:
//
//	word            = 1*(ALPHA / "_")
func (s *Scanner) MatchWord() int {
	size := 0
	for s.Pos+size < len(s.Input) {
		r, width := utf8.DecodeRuneInString(s.Input[s.Pos+size:])
		if !unicode.IsLetter(r) && r != '_' {
			break
		}
		size += width
	}
	return size
}

// MatchSpace returns the length of the run of whitespace at Pos.
func (s *Scanner) MatchSpace() int {
	size := 0
	for s.Pos+size < len(s.Input) {
		r, width := utf8.DecodeRuneInString(s.Input[s.Pos+size:])
		if !unicode.IsSpace(r) {
			break
		}
		size += width
	}
	return size
}

// Emit the next Token found on Scanner.Input
func (s *Scanner) Emit() parse.Token {
	var t parse.Token

	s.Start = s.Pos
	if s.Pos >= len(s.Input) {
		t.Type = TOK_EOF
		t.Location = parse.Location{Start: s.Pos, End: s.Pos}
		return t
	}

	r, width := utf8.DecodeRuneInString(s.Input[s.Pos:])
	skip := width

	switch {
	case r == '-':
		t.Type = TOK_DASH
	case r == ':':
		t.Type = TOK_COLON
	case r == ',':
		t.Type = TOK_COMMA
	case r == '(':
		t.Type = TOK_PAREN_L
	case r == ')':
		t.Type = TOK_PAREN_R
	case unicode.IsSpace(r):
		t.Type = TOK_SPACE
		skip = s.MatchSpace()
	case r <= unicode.MaxASCII && unicode.IsDigit(r):
		t.Type = TOK_NUMBER
		skip = s.MatchNumber()
	case unicode.IsLetter(r) || r == '_':
		t.Type = TOK_WORD
		skip = s.MatchWord()
	default:
		t.Type = TOK_INVALID
	}

	s.Pos += skip
	t.Lexeme = s.Input[s.Start:s.Pos]
	t.Location = parse.Location{Start: s.Start, End: s.Pos}

	return t
}

// Peek returns the next Token without consuming it.
func (s *Scanner) Peek() parse.Token {
	start, pos := s.Start, s.Pos
	t := s.Emit()
	s.Start, s.Pos = start, pos
	return t
}
