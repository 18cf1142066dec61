// Copyright 2021 Converter Systems LLC. All rights reserved.

package main

import (
	"strings"
	"testing"

	"github.com/awcullen/uacodec/ua"
	"gotest.tools/assert"
)

func TestNodeIDCommand(t *testing.T) {
	stdout, stderr, err := execute("nodeid", "ns=0;i=85", "ns=2;s=Demo.Static.Scalar.Float", "nsu=urn:a;b=YWJjZA==", "ns=x;i=1")
	assert.ErrorContains(t, err, "1 of 4 node ids are invalid")
	assert.Equal(t, stdout, "i=85\nns=2;s=Demo.Static.Scalar.Float\nnsu=urn:a;b=YWJjZA==\n")
	assert.Assert(t, strings.Contains(stderr, `"ns=x;i=1"`))
}

func TestCanonicalNodeIDResolve(t *testing.T) {
	table := ua.NewNamespaceTable("urn:a", "urn:b")
	cases := []struct {
		in, out string
	}{
		{"nsu=urn:b;i=1001", "ns=2;i=1001"},
		{"ns=1;s=Pump", "nsu=urn:a;s=Pump"},
		{"ns=7;s=Pump", "ns=7;s=Pump"},
		{"i=85", "i=85"},
		{"svr=1;nsu=urn:b;i=1", "svr=1;nsu=urn:b;i=1"},
	}
	for _, c := range cases {
		out, err := canonicalNodeID(c.in, table, true)
		assert.NilError(t, err)
		assert.Equal(t, out, c.out)
	}
	_, err := canonicalNodeID("nsu=urn:c;i=1", table, true)
	assert.Equal(t, ua.StatusCodeOf(err), ua.BadNodeIDUnknown)
}

func TestTypesCommand(t *testing.T) {
	stdout, _, err := execute("types")
	assert.NilError(t, err)
	assert.Assert(t, strings.HasPrefix(stdout, "NAME"))
	assert.Assert(t, strings.Contains(stdout, "Argument"))
	assert.Assert(t, strings.Contains(stdout, "WriteResponse"))
}
