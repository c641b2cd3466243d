/*
 * Copyright (c) 2023, Gideon Williams gideon@gideonw.com
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package repl

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/dburkart/almanac/pkg/proto"
)

type OutputWriter interface {
	Write(v proto.Printable) error
}

type CSVWriter struct {
	w io.Writer
}

// TextWriter renders tables. Tables with a value column gain a column
// describing each value relative to the reference.
type TextWriter struct {
	w   io.Writer
	ref time.Time
}

type JSONWriter struct {
	w io.Writer
}

func NewOutputWriter(w io.Writer, t string, ref time.Time) OutputWriter {
	switch t {
	case "csv":
		return CSVWriter{
			w,
		}
	case "json":
		return JSONWriter{
			w,
		}
	}
	if ref.IsZero() {
		ref = time.Now()
	}
	return TextWriter{
		w,
		ref,
	}
}

func (w CSVWriter) Write(v proto.Printable) error {
	wtr := csv.NewWriter(w.w)
	if err := wtr.Write(v.Headers()); err != nil {
		return err
	}
	return wtr.WriteAll(v.Values())
}

func (w TextWriter) Write(v proto.Printable) error {
	headers, values := v.Headers(), v.Values()

	if col := indexOf(headers, "value"); col != -1 {
		headers = append(append([]string{}, headers...), "relative")
		rows := make([][]string, 0, len(values))
		for _, row := range values {
			rows = append(rows, append(append([]string{}, row...), Relative(row[col], w.ref)))
		}
		values = rows
	}

	table := tablewriter.NewWriter(w.w)
	table.Header(headers)
	if err := table.Bulk(values); err != nil {
		return err
	}
	return table.Render()
}

func (w JSONWriter) Write(v proto.Printable) error {
	enc := json.NewEncoder(w.w)
	return enc.Encode(v)
}

func indexOf(s []string, v string) int {
	for i := range s {
		if s[i] == v {
			return i
		}
	}
	return -1
}

// Relative describes a resolved value for a human: dates and date-times
// relative to ref, durations as a count of seconds. Anything else is left
// blank.
func Relative(value string, ref time.Time) string {
	if strings.HasPrefix(value, "PT") && strings.HasSuffix(value, "S") {
		seconds, err := strconv.ParseFloat(value[2:len(value)-1], 64)
		if err != nil {
			return ""
		}
		return humanize.Commaf(seconds) + " seconds"
	}

	if t, err := time.ParseInLocation(time.DateTime, value, ref.Location()); err == nil {
		return humanize.RelTime(t, ref, "ago", "from now")
	}

	t, err := time.ParseInLocation(time.DateOnly, value, ref.Location())
	if err != nil {
		return ""
	}
	today := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	switch days := int(t.Sub(today).Hours() / 24); days {
	case 0:
		return "today"
	case 1:
		return "tomorrow"
	case -1:
		return "yesterday"
	}
	return humanize.RelTime(t, today, "ago", "from now")
}
