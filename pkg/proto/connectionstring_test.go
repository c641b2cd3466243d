/*
 * Copyright (c) 2022, Gideon Williams gideon@gideonw.com
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package proto

import "testing"

func TestParseConnectionString(t *testing.T) {
	tt := []struct {
		test    string
		connStr string
		addr    string
		local   bool
		culture string
	}{
		{
			"Test empty conn string",
			"",
			"local",
			true,
			"",
		},
		{
			"Test local no culture",
			"local",
			"local",
			true,
			"",
		},
		{
			"Test local culture",
			"local:es-es",
			"local",
			true,
			"es-es",
		},
		{
			"Test host no culture",
			"almanac://localhost:8000",
			"localhost:8000",
			false,
			"",
		},
		{
			"Test host no culture end slash",
			"almanac://localhost:8000/",
			"localhost:8000",
			false,
			"",
		},
		{
			"Test host culture",
			"almanac://10.0.0.2:8000/en-us",
			"10.0.0.2:8000",
			false,
			"en-us",
		},
	}

	for _, bad := range []string{"almanack:///zx", "tcp:///zx", "almanac:///en-us", "almanac://localhost:8000/a/b"} {
		if _, err := ParseConnectionString(bad); err == nil {
			t.Errorf("%s should have caused an error", bad)
		}
	}

	for _, tc := range tt {
		t.Run(tc.test, func(t *testing.T) {
			connStr, err := ParseConnectionString(tc.connStr)
			if err != nil {
				t.Fatal(err)
			}
			if connStr.Address != tc.addr {
				t.Errorf("Address mismatch: %s != %s", connStr.Address, tc.addr)
			}
			if connStr.Local != tc.local {
				t.Error("local mismatch")
			}
			if connStr.Culture != tc.culture {
				t.Errorf("culture mismatch: %s != %s", connStr.Culture, tc.culture)
			}
		})
	}
}
