/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package extract

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	almanac "github.com/dburkart/almanac/api"
	"github.com/dburkart/almanac/pkg/engine"
	"github.com/dburkart/almanac/pkg/proto"
)

func TestInput(t *testing.T) {
	text, err := input([]string{"see", "you", "tomorrow"}, strings.NewReader("ignored"), false)
	require.NoError(t, err)
	assert.Equal(t, "see you tomorrow", text)

	text, err = input(nil, strings.NewReader("from stdin"), false)
	require.NoError(t, err)
	assert.Equal(t, "from stdin", text)

	text, err = input(nil, strings.NewReader("<p>due <b>Friday</b></p><script>x()</script>"), true)
	require.NoError(t, err)
	assert.Equal(t, "due Friday", text)

	_, err = input([]string{"/does/not/exist.html"}, nil, true)
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	viper.Set("almanac.reference", "2023-06-14")
	defer viper.Set("almanac.reference", "")

	client := almanac.NewLocalClient(engine.New(nil))
	require.NoError(t, client.Open(proto.ConnectionString{Local: true}, 1))

	p, err := run(client, "ship it by June 20", false)
	require.NoError(t, err)
	spans := p.(proto.ExtractResponse).Spans
	require.Len(t, spans, 1)
	assert.Equal(t, "XXXX-06-20", spans[0].Timex)

	p, err = run(client, "ship it by June 20", true)
	require.NoError(t, err)
	results := p.(proto.RecognizeResponse).Results
	require.Len(t, results, 1)
	assert.Equal(t, "2023-06-20", results[0].Resolution[len(results[0].Resolution)-1].Value)
}
