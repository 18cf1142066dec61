// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua_test

import (
	"testing"

	"github.com/awcullen/uacodec/ua"
	"github.com/google/uuid"
	"gotest.tools/assert"
)

func TestParseNodeID(t *testing.T) {
	cases := []struct {
		s  string
		id ua.NodeID
	}{
		{"i=85", ua.NewNodeIDNumeric(0, 85)},
		{"ns=2;i=4294967295", ua.NewNodeIDNumeric(2, 4294967295)},
		{"ns=2;s=Demo.Static.Scalar.Float", ua.NewNodeIDString(2, "Demo.Static.Scalar.Float")},
		{"ns=1;s=a;b=c", ua.NewNodeIDString(1, "a;b=c")},
		{"ns=2;g=5ce9dbce-5d79-434c-9ac3-1cfba9a6e92c", ua.NewNodeIDGUID(2, uuid.MustParse("5ce9dbce-5d79-434c-9ac3-1cfba9a6e92c"))},
		{"ns=2;b=YWJjZA==", ua.NewNodeIDOpaque(2, ua.ByteString("abcd"))},
		{"ns=65535;i=1", ua.NewNodeIDNumeric(65535, 1)},
	}
	for _, c := range cases {
		id, err := ua.ParseNodeID(c.s)
		if err != nil {
			t.Fatal(err)
		}
		assert.DeepEqual(t, id, c.id)
		assert.Equal(t, id.String(), c.s)
	}
}

func TestParseNodeIDWithDefaultNamespace(t *testing.T) {
	id, err := ua.ParseNodeID("ns=0;i=85")
	if err != nil {
		t.Fatal(err)
	}
	assert.DeepEqual(t, id, ua.NewNodeIDNumeric(0, 85))
	assert.Equal(t, id.String(), "i=85")
}

func TestParseNodeIDErrors(t *testing.T) {
	cases := []string{
		"",
		"ns=2",
		"ns=x;i=1",
		"ns=65536;i=1",
		"ns=2;x=1",
		"i=abc",
		"i=4294967296",
		"g=not-a-guid",
		"b=!!",
	}
	for _, s := range cases {
		_, err := ua.ParseNodeID(s)
		assert.Assert(t, err != nil, "parsing %q", s)
		assert.Equal(t, ua.StatusCodeOf(err), ua.BadNodeIDInvalid, "parsing %q", s)
	}
}

func FuzzParseNodeID(f *testing.F) {
	for _, s := range []string{"i=85", "ns=2;s=Demo", "ns=2;g=5ce9dbce-5d79-434c-9ac3-1cfba9a6e92c", "ns=2;b=YWJjZA==", "ns=;", "s="} {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, s string) {
		id, err := ua.ParseNodeID(s)
		if err != nil {
			return
		}
		again, err := ua.ParseNodeID(id.String())
		if err != nil {
			t.Fatalf("parsing %q: %v", id.String(), err)
		}
		if !again.Equal(id) {
			t.Fatalf("%q parsed as %v, then %v", s, id, again)
		}
	})
}

func TestParseExpandedNodeID(t *testing.T) {
	cases := []struct {
		s  string
		id ua.ExpandedNodeID
	}{
		{"i=85", ua.NewExpandedNodeID(ua.NewNodeIDNumeric(0, 85))},
		{"nsu=http://www.unifiedautomation.com/DemoServer/;s=Demo.Static.Scalar.Float", ua.NewExpandedNodeIDString(0, "http://www.unifiedautomation.com/DemoServer/", "Demo.Static.Scalar.Float")},
		{"svr=1;nsu=http://www.unifiedautomation.com/DemoServer/;g=5ce9dbce-5d79-434c-9ac3-1cfba9a6e92c", ua.NewExpandedNodeIDGUID(1, "http://www.unifiedautomation.com/DemoServer/", uuid.MustParse("5ce9dbce-5d79-434c-9ac3-1cfba9a6e92c"))},
		{"ns=2;b=YWJjZA==", ua.NewExpandedNodeID(ua.NewNodeIDOpaque(2, ua.ByteString("abcd")))},
	}
	for _, c := range cases {
		id, err := ua.ParseExpandedNodeID(c.s)
		if err != nil {
			t.Fatal(err)
		}
		assert.DeepEqual(t, id, c.id)
		assert.Equal(t, id.String(), c.s)
	}
}

func TestExpandedNodeIDToNodeID(t *testing.T) {
	table := ua.NewNamespaceTable("urn:a", "urn:b")
	// the namespace uri takes precedence over the index.
	id := ua.NewExpandedNodeIDNumeric(0, "urn:b", 7)
	n, err := id.ToNodeID(table)
	if err != nil {
		t.Fatal(err)
	}
	assert.DeepEqual(t, n, ua.NewNodeIDNumeric(2, 7))

	_, err = ua.NewExpandedNodeIDNumeric(0, "urn:c", 7).ToNodeID(table)
	assert.Equal(t, ua.StatusCodeOf(err), ua.BadNodeIDUnknown)

	e := ua.NewNodeIDString(1, "x").ToExpandedNodeID(table)
	assert.Equal(t, e.NamespaceURI(), "urn:a")
	assert.Equal(t, e.String(), "nsu=urn:a;s=x")
}

func TestNodeIDIsNil(t *testing.T) {
	assert.Assert(t, ua.NilNodeID.IsNil())
	assert.Assert(t, ua.NewNodeIDString(0, "").IsNil())
	assert.Assert(t, !ua.NewNodeIDNumeric(1, 0).IsNil())
	assert.Assert(t, ua.NilExpandedNodeID.IsNil())
	assert.Assert(t, !ua.NewExpandedNodeIDNumeric(0, "urn:a", 0).IsNil())
}

func TestParseQualifiedName(t *testing.T) {
	cases := []struct {
		s  string
		qn ua.QualifiedName
	}{
		{"Demo", ua.NewQualifiedName(0, "Demo")},
		{"2:Demo", ua.NewQualifiedName(2, "Demo")},
		{"x:Demo", ua.NewQualifiedName(0, "x:Demo")},
	}
	for _, c := range cases {
		assert.DeepEqual(t, ua.ParseQualifiedName(c.s), c.qn)
		assert.Equal(t, c.qn.String(), c.s)
	}
}
