// Copyright 2021 Converter Systems LLC. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/awcullen/uacodec/ua"
	"github.com/google/go-cmp/cmp"
	"gotest.tools/assert"
)

// execute runs the command line and returns stdout and stderr.
func execute(args ...string) (string, string, error) {
	cmd := newRootCmd()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeExtensionObject(t *testing.T, file string, format ua.EncodingFormat, value ua.ExtensionObject) {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := ua.EncodeExtensionObject(ua.NewEncodingContext(), format, buf, value); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(file, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readExtensionObject(t *testing.T, file string, format ua.EncodingFormat) ua.ExtensionObject {
	t.Helper()
	b, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	v, err := ua.DecodeExtensionObject(ua.NewEncodingContext(), format, bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestTranscodeChain(t *testing.T) {
	dir := t.TempDir()
	in := ua.NewExtensionObject(ua.Argument{
		Name:        "Speed",
		DataType:    ua.DataTypeIDDouble,
		ValueRank:   ua.ValueRankScalar,
		Description: ua.NewLocalizedText("rpm", "en"),
	})
	writeExtensionObject(t, filepath.Join(dir, "arg.uabin"), ua.EncodingFormatBinary, in)

	steps := []struct {
		from, to string
		file     string
		format   ua.EncodingFormat
	}{
		{"binary", "xml", "arg.uabin", ua.EncodingFormatXML},
		{"xml", "json", "arg.xml", ua.EncodingFormatJSON},
		{"json", "binary", "arg.json", ua.EncodingFormatBinary},
	}
	for _, s := range steps {
		_, _, err := execute("transcode", "--from", s.from, "--to", s.to, filepath.Join(dir, s.file))
		assert.NilError(t, err)
		out := filepath.Join(dir, "arg"+extensions[s.format])
		if diff := cmp.Diff(in, readExtensionObject(t, out, s.format)); diff != "" {
			t.Errorf("%s to %s mismatch (-want +got):\n%s", s.from, s.to, diff)
		}
	}
}

func TestTranscodeManyFiles(t *testing.T) {
	dir := t.TempDir()
	outDir := t.TempDir()
	var files []string
	for i, v := range []ua.Structure{
		ua.ElementOperand{Index: 1},
		ua.ElementOperand{Index: 2},
		ua.WriteResponse{Results: []ua.StatusCode{ua.Good}},
	} {
		file := filepath.Join(dir, string(rune('a'+i))+".uabin")
		writeExtensionObject(t, file, ua.EncodingFormatBinary, ua.NewExtensionObject(v))
		files = append(files, file)
	}
	args := append([]string{"transcode", "--from", "binary", "--to", "xml", "--workers", "2", "--out", outDir}, files...)
	_, stderr, err := execute(args...)
	assert.NilError(t, err)
	for i := range files {
		v := readExtensionObject(t, filepath.Join(outDir, string(rune('a'+i))+".xml"), ua.EncodingFormatXML)
		assert.Assert(t, !v.IsEncoded())
	}
	assert.Assert(t, bytes.Contains([]byte(stderr), []byte("transcoded")))
}

func TestTranscodeFailures(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.uabin")
	writeExtensionObject(t, good, ua.EncodingFormatBinary, ua.NewExtensionObject(ua.ElementOperand{Index: 3}))
	bad := filepath.Join(dir, "bad.uabin")
	if err := os.WriteFile(bad, []byte{0x01, 0x00}, 0o644); err != nil {
		t.Fatal(err)
	}
	_, stderr, err := execute("transcode", "--from", "binary", "--to", "json", good, bad, filepath.Join(dir, "missing.uabin"))
	assert.ErrorContains(t, err, "2 of 3 files failed")
	assert.Assert(t, bytes.Contains([]byte(stderr), []byte("BadDecodingError")))

	_, err = os.Stat(filepath.Join(dir, "good.json"))
	assert.NilError(t, err)
}

func TestTranscodeRejectsOverwrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "op.json")
	writeExtensionObject(t, file, ua.EncodingFormatJSON, ua.NewExtensionObject(ua.ElementOperand{Index: 3}))
	_, _, err := execute("transcode", "--from", "json", "--to", "json", "--non-reversible", file)
	assert.ErrorContains(t, err, "1 of 1 files failed")
}

func TestTranscodeUnknownFormat(t *testing.T) {
	_, _, err := execute("transcode", "--from", "yaml", "--to", "json", "x.yaml")
	assert.Equal(t, ua.StatusCodeOf(err), ua.BadDataEncodingUnsupported)
}

func TestTranscodeNonReversible(t *testing.T) {
	tr := &transcoder{
		ec:   ua.NewEncodingContext(),
		from: ua.EncodingFormatBinary,
		to:   ua.EncodingFormatJSON,
	}
	in := &bytes.Buffer{}
	if err := ua.EncodeExtensionObject(tr.ec, ua.EncodingFormatBinary, in, ua.NewExtensionObject(ua.ElementOperand{Index: 2})); err != nil {
		t.Fatal(err)
	}
	out := &bytes.Buffer{}
	assert.NilError(t, tr.transcode(in.Bytes(), out))
	assert.Equal(t, out.String(), `{"Index":2}`)
}
