/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package timex

import (
	"testing"
)

func TestMatchNumber(t *testing.T) {
	s := Scanner{Input: "2023-06"}
	if width := s.MatchNumber(); width != 4 {
		t.Errorf("2023 should have width of 4, not %d", width)
	}

	s.Input = "1.5D"
	if width := s.MatchNumber(); width != 3 {
		t.Errorf("1.5 should have width of 3, not %d", width)
	}

	s.Input = "1.D"
	if width := s.MatchNumber(); width != 1 {
		t.Errorf("a trailing '.' should not be part of the number, got width %d", width)
	}

	s.Input = "XXXX"
	if width := s.MatchNumber(); width != 0 {
		t.Error("XXXX should not have a number width!")
	}
}

func TestEmit(t *testing.T) {
	s := Scanner{Input: "(XXXX-WXX-1T16:30,P1DT2H) 1.5"}

	want := []struct {
		typ    TokenType
		lexeme string
	}{
		{TOK_PAREN_L, "("},
		{TOK_WORD, "XXXX"},
		{TOK_DASH, "-"},
		{TOK_WORD, "WXX"},
		{TOK_DASH, "-"},
		{TOK_NUMBER, "1"},
		{TOK_WORD, "T"},
		{TOK_NUMBER, "16"},
		{TOK_COLON, ":"},
		{TOK_NUMBER, "30"},
		{TOK_COMMA, ","},
		{TOK_WORD, "P"},
		{TOK_NUMBER, "1"},
		{TOK_WORD, "DT"},
		{TOK_NUMBER, "2"},
		{TOK_WORD, "H"},
		{TOK_PAREN_R, ")"},
		{TOK_SPACE, " "},
		{TOK_NUMBER, "1.5"},
		{TOK_EOF, ""},
	}

	for i, w := range want {
		tok := s.Emit()
		if tok.Type != w.typ || tok.Lexeme != w.lexeme {
			t.Fatalf("token %d: wanted %s %q, got %s %q", i, w.typ.ToString(), w.lexeme, tok.Type.ToString(), tok.Lexeme)
		}
	}
}

func TestPeek(t *testing.T) {
	s := Scanner{Input: "T16"}

	peeked := s.Peek()
	emitted := s.Emit()
	if peeked != emitted {
		t.Errorf("Peek returned %v but Emit returned %v", peeked, emitted)
	}
	if s.Pos != 1 {
		t.Errorf("wanted position 1 after one token, got %d", s.Pos)
	}
}

func TestEmitInvalid(t *testing.T) {
	s := Scanner{Input: "2023/06"}
	s.Emit()

	tok := s.Emit()
	if tok.Type != TOK_INVALID {
		t.Errorf("wanted TOK_INVALID for '/', got %s", tok.Type.ToString())
	}
}
