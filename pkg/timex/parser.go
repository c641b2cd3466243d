/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package timex

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dburkart/almanac/pkg/common/parse"
)

type Parser struct {
	Scanner Scanner
}

// Parse reads a canonical TIMEX string into a Property whose shape is
// inferred from the fields present.
func Parse(input string) (Property, error) {
	p := Parser{Scanner: Scanner{Input: input}}
	return p.Parse()
}

// MustParse is like Parse but panics on malformed input.
func MustParse(input string) Property {
	prop, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return prop
}

func (p *Parser) Parse() (prop Property, err error) {
	defer func() {
		if e := recover(); e != nil {
			syntaxError, ok := e.(parse.SyntaxError)
			if !ok {
				panic(e)
			}
			prop = Property{}
			err = errors.New(syntaxError.FormatError(p.Scanner.Input))
		}
	}()

	p.Scanner.Input = strings.ToUpper(strings.TrimSpace(p.Scanner.Input))
	if p.Scanner.Input == "" {
		return Property{}, errors.New("empty expression")
	}

	prop = p.timex()

	tok := p.Scanner.Emit()
	if tok.Type != TOK_EOF {
		tok.Location.End = len(p.Scanner.Input)
		panic(parse.NewSyntaxError(tok, "Error: expression is not valid, starting here"))
	}

	return prop.inferred(), nil
}

// timex returns the top level value
//
// Grammar:
//
//	timex           = range / duration / "PRESENT_REF" / point
func (p *Parser) timex() Property {
	tok := p.Scanner.Peek()

	switch {
	case tok.Type == TOK_PAREN_L:
		return p.rangeExpr()
	case tok.Type == TOK_WORD && tok.Lexeme == presentRef:
		p.Scanner.Emit()
		return Property{present: true}
	case tok.Type == TOK_WORD && strings.HasPrefix(tok.Lexeme, "P"):
		return p.duration()
	}

	return p.point()
}

// rangeExpr returns a value with start and end bounds
//
// Grammar:
//
//	range           = "(" point "," point [ "," duration ] ")"
func (p *Parser) rangeExpr() Property {
	p.expect(TOK_PAREN_L, "'('")
	start := p.point().inferred()
	p.expect(TOK_COMMA, "','")
	end := p.point().inferred()

	prop := Property{start: &start, end: &end}

	if p.Scanner.Peek().Type == TOK_COMMA {
		p.Scanner.Emit()
		d := p.duration()
		prop.amount, prop.unit = d.amount, d.unit
	}

	p.expect(TOK_PAREN_R, "')'")
	return prop
}

// point returns a date, a time of day, or both
//
// Grammar:
//
//	point           = date [ ( "T" / SP ) time ] / "T" time / clock
func (p *Parser) point() Property {
	var prop Property
	tok := p.Scanner.Peek()

	switch {
	case tok.Type == TOK_WORD && strings.HasPrefix(tok.Lexeme, "T"):
		p.time(&prop)
		return prop
	case tok.Type == TOK_NUMBER && len(tok.Lexeme) <= 2 && p.peekSecond().Type != TOK_WORD:
		p.clock(&prop)
		return prop
	}

	p.date(&prop)
	if prop == (Property{}) {
		panic(parse.NewSyntaxError(tok, "Error: expression does not specify any field"))
	}

	next := p.Scanner.Peek()
	switch {
	case next.Type == TOK_WORD && strings.HasPrefix(next.Lexeme, "T"):
		p.time(&prop)
	case next.Type == TOK_SPACE:
		p.Scanner.Emit()
		p.clock(&prop)
	}

	return prop
}

// date fills in the calendar fields
//
// Grammar:
//
//	date            = year [ "-" ( month [ "-" day ] / "XX-" day / week / season ) ]
//	season          = "SP" / "SU" / "FA" / "WI"
func (p *Parser) date(prop *Property) {
	p.year(prop)

	if p.Scanner.Peek().Type != TOK_DASH {
		return
	}
	p.Scanner.Emit()

	tok := p.Scanner.Peek()
	switch {
	case tok.Type == TOK_NUMBER:
		prop.month = some(p.integer(1, 12, "month"))
		if p.Scanner.Peek().Type == TOK_DASH {
			p.Scanner.Emit()
			dayTok := p.Scanner.Peek()
			prop.dayOfMonth = some(p.integer(1, 31, "day of month"))
			if !dayExists(prop.year, prop.month.v, prop.dayOfMonth.v) {
				panic(parse.NewSyntaxError(dayTok, fmt.Sprintf("Error: %s-%02d has no day %d", prop.formatYear(), prop.month.v, prop.dayOfMonth.v)))
			}
		}
	case tok.Type == TOK_WORD && tok.Lexeme == "XX":
		p.Scanner.Emit()
		p.expect(TOK_DASH, "'-'")
		prop.dayOfMonth = some(p.integer(1, 31, "day of month"))
	case tok.Type == TOK_WORD && strings.HasPrefix(tok.Lexeme, "W"):
		p.week(prop)
	case tok.Type == TOK_WORD && isSeason(tok.Lexeme):
		p.Scanner.Emit()
		prop.season = tok.Lexeme
	default:
		p.Scanner.Emit()
		panic(parse.NewSyntaxError(tok, fmt.Sprintf("Error: unexpected token '%s', expected month, week or season", tok.Lexeme)))
	}
}

// year fills in the year, decade or century
//
// Grammar:
//
//	year            = 4DIGIT / "XXXX" / 3DIGIT "X" / 2DIGIT "XX"
func (p *Parser) year(prop *Property) {
	tok := p.Scanner.Emit()

	if tok.Type == TOK_WORD && tok.Lexeme == "XXXX" {
		return
	}

	if tok.Type == TOK_NUMBER && !strings.Contains(tok.Lexeme, ".") {
		n, _ := strconv.Atoi(tok.Lexeme)
		switch len(tok.Lexeme) {
		case 4:
			prop.year = some(n)
			return
		case 3:
			p.expectWord("X", "decade marker 'X'")
			prop.decade = some(n)
			return
		case 2:
			p.expectWord("XX", "century marker 'XX'")
			prop.century = some(n)
			return
		}
	}

	panic(parse.NewSyntaxError(tok, fmt.Sprintf("Error: unexpected token '%s', expected year", tok.Lexeme)))
}

// week fills in the week of year and day of week
//
// Grammar:
//
//	week            = ( "W" 2DIGIT / "WXX" ) [ "-" DIGIT ]
func (p *Parser) week(prop *Property) {
	tok := p.Scanner.Emit()

	switch tok.Lexeme {
	case "WXX":
	case "W":
		prop.weekOfYear = some(p.integer(1, 53, "week of year"))
	default:
		panic(parse.NewSyntaxError(tok, fmt.Sprintf("Error: unexpected token '%s', expected week", tok.Lexeme)))
	}

	if p.Scanner.Peek().Type == TOK_DASH {
		p.Scanner.Emit()
		prop.dayOfWeek = some(p.integer(1, 7, "day of week"))
	}
}

// time fills in a clock time or a part of day
//
// Grammar:
//
//	time            = "T" ( clock / partofday )
//	partofday       = 1*ALPHA
func (p *Parser) time(prop *Property) {
	tok := p.Scanner.Emit()

	if tok.Lexeme == "T" {
		p.clock(prop)
		return
	}

	prop.partOfDay = tok.Lexeme[1:]
}

// clock fills in hour, minute and second
//
// Grammar:
//
//	clock           = 2DIGIT [ ":" 2DIGIT [ ":" 2DIGIT ] ]
func (p *Parser) clock(prop *Property) {
	hourTok := p.Scanner.Peek()
	hour := p.integer(0, 24, "hour")
	prop.hour = some(hour)

	if p.Scanner.Peek().Type == TOK_COLON {
		p.Scanner.Emit()
		prop.minute = some(p.integer(0, 59, "minute"))

		if p.Scanner.Peek().Type == TOK_COLON {
			p.Scanner.Emit()
			prop.second = some(p.integer(0, 59, "second"))
		}
	}

	if hour == 24 && (prop.minute.v != 0 || prop.second.v != 0) {
		panic(parse.NewSyntaxError(hourTok, "Error: 24 only denotes the end of a day"))
	}
}

type component struct {
	amount float64
	unit   Unit
}

// duration returns an amount of some unit
//
// Grammar:
//
//	duration        = "P" 1*( number dunit ) [ "T" 1*( number tunit ) ]
//	                / "PT" 1*( number tunit )
//	dunit           = "Y" / "M" / "W" / "D"
//	tunit           = "H" / "M" / "S"
func (p *Parser) duration() Property {
	tok := p.Scanner.Emit()

	inTime := false
	switch tok.Lexeme {
	case "P":
	case "PT":
		inTime = true
	default:
		panic(parse.NewSyntaxError(tok, fmt.Sprintf("Error: unexpected token '%s', expected duration", tok.Lexeme)))
	}

	var parts []component
	for {
		num := p.Scanner.Emit()
		if num.Type != TOK_NUMBER {
			panic(parse.NewSyntaxError(num, fmt.Sprintf("Error: unexpected token '%s', expected amount", num.Lexeme)))
		}
		amount, err := strconv.ParseFloat(num.Lexeme, 64)
		if err != nil {
			panic(parse.NewSyntaxError(num, "Error: amount is not a number"))
		}

		unitTok := p.Scanner.Emit()
		if unitTok.Type != TOK_WORD {
			panic(parse.NewSyntaxError(unitTok, fmt.Sprintf("Error: unexpected token '%s', expected unit", unitTok.Lexeme)))
		}

		unit, ok := designator(unitTok.Lexeme[0], inTime)
		if !ok {
			panic(parse.NewSyntaxError(unitTok, fmt.Sprintf("Error: unknown unit '%s'", unitTok.Lexeme)))
		}
		parts = append(parts, component{amount, unit})

		rest := unitTok.Lexeme[1:]
		switch {
		case rest == "T" && !inTime:
			inTime = true
		case rest != "":
			panic(parse.NewSyntaxError(unitTok, fmt.Sprintf("Error: unexpected designator '%s'", rest)))
		}

		if p.Scanner.Peek().Type != TOK_NUMBER {
			if rest == "T" {
				panic(parse.NewSyntaxError(p.Scanner.Emit(), "Error: expected a time component after 'T'"))
			}
			break
		}
	}

	amount, unit := collapse(parts)
	return Property{amount: amount, unit: unit}
}

func designator(b byte, inTime bool) (Unit, bool) {
	if inTime {
		switch b {
		case 'H':
			return UnitHour, true
		case 'M':
			return UnitMinute, true
		case 'S':
			return UnitSecond, true
		}
		return UnitNone, false
	}

	switch b {
	case 'Y':
		return UnitYear, true
	case 'M':
		return UnitMonth, true
	case 'W':
		return UnitWeek, true
	case 'D':
		return UnitDay, true
	}
	return UnitNone, false
}

// Exact conversions from a unit to the next smaller one. Months have no exact
// number of weeks.
var stepFactor = map[Unit]float64{
	UnitYear:   12,
	UnitWeek:   7,
	UnitDay:    24,
	UnitHour:   60,
	UnitMinute: 60,
}

// collapse folds a compound duration into its smallest unit, falling back to
// nominal seconds when no exact conversion exists.
func collapse(parts []component) (float64, Unit) {
	if len(parts) == 1 {
		return parts[0].amount, parts[0].unit
	}

	smallest := UnitNone
	for _, c := range parts {
		if c.unit > smallest {
			smallest = c.unit
		}
	}

	total := 0.0
	for _, c := range parts {
		f, ok := factor(c.unit, smallest)
		if !ok {
			return nominalSeconds(parts), UnitSecond
		}
		total += c.amount * f
	}
	return total, smallest
}

func factor(from, to Unit) (float64, bool) {
	f := 1.0
	for u := from; u < to; u++ {
		step, ok := stepFactor[u]
		if !ok {
			return 0, false
		}
		f *= step
	}
	return f, true
}

func nominalSeconds(parts []component) float64 {
	total := 0.0
	for _, c := range parts {
		s, _ := c.unit.Seconds()
		total += c.amount * s
	}
	return total
}

func (p *Parser) integer(min, max int, what string) int {
	tok := p.Scanner.Emit()
	if tok.Type != TOK_NUMBER {
		panic(parse.NewSyntaxError(tok, fmt.Sprintf("Error: unexpected token '%s', expected %s", tok.Lexeme, what)))
	}

	n, err := strconv.Atoi(tok.Lexeme)
	if err != nil || n < min || n > max {
		panic(parse.NewSyntaxError(tok, fmt.Sprintf("Error: %s must be between %d and %d", what, min, max)))
	}
	return n
}

// dayExists reports whether day falls within month. Without a year,
// February 29 is allowed.
func dayExists(year field, month, day int) bool {
	y := 2000
	if year.ok {
		y = year.v
	}
	return time.Date(y, time.Month(month), day, 0, 0, 0, 0, time.UTC).Day() == day
}

func (p *Parser) expect(t TokenType, what string) {
	tok := p.Scanner.Emit()
	if tok.Type != t {
		panic(parse.NewSyntaxError(tok, fmt.Sprintf("Error: unexpected token '%s', expected %s", tok.Lexeme, what)))
	}
}

func (p *Parser) expectWord(lexeme, what string) {
	tok := p.Scanner.Emit()
	if tok.Type != TOK_WORD || tok.Lexeme != lexeme {
		panic(parse.NewSyntaxError(tok, fmt.Sprintf("Error: unexpected token '%s', expected %s", tok.Lexeme, what)))
	}
}

// peekSecond returns the token after the next one without consuming either.
func (p *Parser) peekSecond() parse.Token {
	saved := p.Scanner
	p.Scanner.Emit()
	t := p.Scanner.Emit()
	p.Scanner = saved
	return t
}
