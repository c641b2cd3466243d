/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package proto

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/dburkart/almanac/pkg/engine"
	"github.com/dburkart/almanac/pkg/extract"
	"github.com/dburkart/almanac/pkg/resolve"
	"github.com/dburkart/almanac/pkg/timezone"
)

// Version is the protocol version announced by clients and servers.
var Version = "1"

const (
	CodeOk             = 200
	CodeBadRequest     = 400
	CodeUnknownCommand = 404
	CodeUnknownCulture = 422
	CodeRateLimited    = 429
	CodeInternal       = 500
)

var (
	MessageOk                  = NewMessageWithType(CommandOk, OkResponse{Code: CodeOk, Message: "ok"})
	MessageErrorUnknownCommand = NewErrMessage(CodeUnknownCommand, errors.New("unknown command"))
	MessageErrorRateLimited    = NewErrMessage(CodeRateLimited, errors.New("rate limit exceeded"))
)

// Printable is a response that can be rendered as a table.
type Printable interface {
	Headers() []string
	Values() [][]string
}

// ParseReference parses a reference instant given as RFC 3339 or as a bare
// date. An empty string is the zero time, which means "now" downstream.
func ParseReference(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, errors.Errorf("invalid reference %q: expected RFC 3339 or YYYY-MM-DD", s)
	}
	return t, nil
}

func unmarshalJSON(b []byte, v any, what string) error {
	return errors.Wrapf(json.Unmarshal(b, v), "unable to unmarshal %s", what)
}

type (
	ErrResponse struct {
		Code int
		Err  error
	}

	OkResponse struct {
		Code    int
		Message string
	}

	VersionRequest struct {
		Version string
	}

	VersionResponse struct {
		Code    int
		Version string
	}

	ExtractRequest struct {
		Text      string `json:"text"`
		Culture   string `json:"culture,omitempty"`
		Reference string `json:"reference,omitempty"`
	}

	ExtractResponse struct {
		Culture string         `json:"culture"`
		Spans   []extract.Span `json:"spans"`
	}

	RecognizeRequest ExtractRequest

	RecognizeResponse struct {
		Culture string               `json:"culture"`
		Results []engine.Recognition `json:"results"`
	}

	ResolveRequest struct {
		Timex     []string `json:"timex"`
		Reference string   `json:"reference,omitempty"`
	}

	ResolveResponse struct {
		Entries []resolve.Entry `json:"entries"`
	}

	OffsetRequest struct {
		Text    string `json:"text"`
		Culture string `json:"culture,omitempty"`
	}

	OffsetResponse struct {
		Text       string          `json:"text"`
		Offset     timezone.Offset `json:"offset"`
		Display    string          `json:"display"`
		Resolution string          `json:"resolution"`
	}

	CulturesRequest struct{}

	CulturesResponse struct {
		Cultures []string `json:"cultures"`
	}
)

// ErrResponse
// --------------------------

func (rq ErrResponse) Error() string {
	if rq.Err == nil {
		return fmt.Sprintf("%d error", rq.Code)
	}
	return rq.Err.Error()
}

// Marshal renders "<code> <message>".
func (rq ErrResponse) Marshal() ([]byte, error) {
	msg := "error"
	if rq.Err != nil {
		msg = strings.Join(strings.Fields(rq.Err.Error()), " ")
	}
	return []byte(fmt.Sprintf("%d %s", rq.Code, msg)), nil
}

func (rq *ErrResponse) Unmarshal(b []byte) error {
	code, msg, _ := strings.Cut(string(b), " ")
	c, err := strconv.Atoi(code)
	if err != nil {
		return errors.Wrap(err, "unable to unmarshal error code")
	}
	rq.Code = c
	rq.Err = errors.New(msg)
	return nil
}

// OkResponse
// --------------------------

func (rq OkResponse) Marshal() ([]byte, error) {
	return []byte(fmt.Sprintf("%d %s", rq.Code, rq.Message)), nil
}

func (rq *OkResponse) Unmarshal(b []byte) error {
	code, msg, _ := strings.Cut(string(b), " ")
	c, err := strconv.Atoi(code)
	if err != nil {
		return errors.Wrap(err, "unable to unmarshal ok code")
	}
	rq.Code, rq.Message = c, msg
	return nil
}

// VersionRequest
// --------------------------

func (rq VersionRequest) Marshal() ([]byte, error) {
	return []byte(rq.Version), nil
}

func (rq *VersionRequest) Unmarshal(b []byte) error {
	rq.Version = string(b)
	return nil
}

// VersionResponse
// --------------------------

func (rq VersionResponse) Marshal() ([]byte, error) {
	return []byte(fmt.Sprintf("%d %s", rq.Code, rq.Version)), nil
}

func (rq *VersionResponse) Unmarshal(b []byte) error {
	code, version, _ := strings.Cut(string(b), " ")
	c, err := strconv.Atoi(code)
	if err != nil {
		return errors.Wrap(err, "unable to unmarshal version code")
	}
	rq.Code, rq.Version = c, version
	return nil
}

func (rq VersionResponse) Headers() []string { return []string{"code", "version"} }

func (rq VersionResponse) Values() [][]string {
	return [][]string{{strconv.Itoa(rq.Code), rq.Version}}
}

// ExtractRequest
// --------------------------

func (rq ExtractRequest) Marshal() ([]byte, error) { return json.Marshal(rq) }

func (rq *ExtractRequest) Unmarshal(b []byte) error {
	return unmarshalJSON(b, rq, "extract request")
}

// ExtractResponse
// --------------------------

func (rq ExtractResponse) Marshal() ([]byte, error) { return json.Marshal(rq) }

func (rq *ExtractResponse) Unmarshal(b []byte) error {
	return unmarshalJSON(b, rq, "extract response")
}

func (rq ExtractResponse) Headers() []string {
	return []string{"start", "length", "text", "type", "timex", "comment"}
}

func (rq ExtractResponse) Values() [][]string {
	values := make([][]string, 0, len(rq.Spans))
	for _, s := range rq.Spans {
		values = append(values, []string{
			strconv.Itoa(s.Start), strconv.Itoa(s.Length), s.Text, s.Type, s.Timex, s.Comment,
		})
	}
	return values
}

// RecognizeRequest
// --------------------------

func (rq RecognizeRequest) Marshal() ([]byte, error) { return json.Marshal(rq) }

func (rq *RecognizeRequest) Unmarshal(b []byte) error {
	return unmarshalJSON(b, rq, "recognize request")
}

// RecognizeResponse
// --------------------------

func (rq RecognizeResponse) Marshal() ([]byte, error) { return json.Marshal(rq) }

func (rq *RecognizeResponse) Unmarshal(b []byte) error {
	return unmarshalJSON(b, rq, "recognize response")
}

func (rq RecognizeResponse) Headers() []string {
	return []string{"text", "type", "timex", "value", "start", "end"}
}

// Values renders one row per resolution entry; spans without entries get a
// row of their own.
func (rq RecognizeResponse) Values() [][]string {
	var values [][]string
	for _, r := range rq.Results {
		switch {
		case r.Offset != nil:
			values = append(values, []string{r.Text, r.Type, "", r.Offset.Resolution(), "", ""})
		case len(r.Resolution) == 0:
			values = append(values, []string{r.Text, r.Type, r.Timex, "", "", ""})
		}
		for _, e := range r.Resolution {
			values = append(values, []string{r.Text, e.Type, e.Timex, e.Value, e.Start, e.End})
		}
	}
	return values
}

// ResolveRequest
// --------------------------

func (rq ResolveRequest) Marshal() ([]byte, error) { return json.Marshal(rq) }

func (rq *ResolveRequest) Unmarshal(b []byte) error {
	return unmarshalJSON(b, rq, "resolve request")
}

// ResolveResponse
// --------------------------

func (rq ResolveResponse) Marshal() ([]byte, error) { return json.Marshal(rq) }

func (rq *ResolveResponse) Unmarshal(b []byte) error {
	return unmarshalJSON(b, rq, "resolve response")
}

func (rq ResolveResponse) Headers() []string {
	return []string{"timex", "type", "value", "start", "end"}
}

func (rq ResolveResponse) Values() [][]string {
	values := make([][]string, 0, len(rq.Entries))
	for _, e := range rq.Entries {
		values = append(values, []string{e.Timex, e.Type, e.Value, e.Start, e.End})
	}
	return values
}

// OffsetRequest
// --------------------------

func (rq OffsetRequest) Marshal() ([]byte, error) { return json.Marshal(rq) }

func (rq *OffsetRequest) Unmarshal(b []byte) error {
	return unmarshalJSON(b, rq, "offset request")
}

// OffsetResponse
// --------------------------

func NewOffsetResponse(text string, o timezone.Offset) OffsetResponse {
	return OffsetResponse{Text: text, Offset: o, Display: o.String(), Resolution: o.Resolution()}
}

func (rq OffsetResponse) Marshal() ([]byte, error) { return json.Marshal(rq) }

func (rq *OffsetResponse) Unmarshal(b []byte) error {
	return unmarshalJSON(b, rq, "offset response")
}

func (rq OffsetResponse) Headers() []string {
	return []string{"text", "offset", "resolution"}
}

func (rq OffsetResponse) Values() [][]string {
	return [][]string{{rq.Text, rq.Display, rq.Resolution}}
}

// CulturesRequest
// --------------------------

func (rq CulturesRequest) Marshal() ([]byte, error) { return []byte{}, nil }

func (rq *CulturesRequest) Unmarshal(_ []byte) error { return nil }

// CulturesResponse
// --------------------------

func (rq CulturesResponse) Marshal() ([]byte, error) { return json.Marshal(rq) }

func (rq *CulturesResponse) Unmarshal(b []byte) error {
	return unmarshalJSON(b, rq, "cultures response")
}

func (rq CulturesResponse) Headers() []string { return []string{"culture"} }

func (rq CulturesResponse) Values() [][]string {
	values := make([][]string, 0, len(rq.Cultures))
	for _, c := range rq.Cultures {
		values = append(values, []string{c})
	}
	return values
}
