// Copyright 2021 Converter Systems LLC. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/awcullen/uacodec/ua"
	"github.com/sirupsen/logrus"
	"gotest.tools/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	limits := ua.DefaultEncodingLimits()
	assert.Assert(t, cfg.Reversible)
	assert.Assert(t, cfg.Workers >= 1)
	assert.Equal(t, cfg.Limits.MaxRecursionDepth, limits.MaxRecursionDepth)
	assert.Equal(t, cfg.Limits.MaxArrayLength, limits.MaxArrayLength)
	assert.Equal(t, cfg.Logger.Level, "info")
	assert.Equal(t, len(cfg.Namespaces), 0)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "uacodec.yaml")
	doc := `
namespaces:
  - urn:a
  - urn:b
reversible: false
workers: 2
limits:
  max_string_length: 64
logger:
  level: debug
  format: json
`
	if err := os.WriteFile(file, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("UACODEC_WORKERS", "5")
	t.Setenv("UACODEC_LIMITS_MAX_ARRAY_LENGTH", "10")

	cfg, err := loadConfig(file)
	if err != nil {
		t.Fatal(err)
	}
	assert.DeepEqual(t, cfg.Namespaces, []string{"urn:a", "urn:b"})
	assert.Assert(t, !cfg.Reversible)
	assert.Equal(t, cfg.Workers, 5)
	assert.Equal(t, cfg.Limits.MaxStringLength, 64)
	assert.Equal(t, cfg.Limits.MaxArrayLength, 10)
	assert.Equal(t, cfg.Limits.MaxRecursionDepth, ua.DefaultEncodingLimits().MaxRecursionDepth)
	assert.Equal(t, cfg.Logger.Format, "json")

	ec := cfg.EncodingContext()
	assert.DeepEqual(t, ec.NamespaceURIs(), []string{ua.NamespaceURIUA, "urn:a", "urn:b"})
	assert.Equal(t, ec.Limits().MaxStringLength, 64)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading config")
}

func TestNewLogger(t *testing.T) {
	out := &bytes.Buffer{}
	log := newLogger(LoggerConfig{Level: "warn", Format: "json", DisableTimestamp: true}, out)
	assert.Equal(t, log.Level, logrus.WarnLevel)
	log.Infoln("hidden")
	log.WithField("file", "a.xml").Warnln("shown")
	assert.Equal(t, strings.TrimSpace(out.String()), `{"file":"a.xml","level":"warning","msg":"shown"}`)

	out.Reset()
	log = newLogger(LoggerConfig{Level: "loud"}, out)
	assert.Equal(t, log.Level, logrus.InfoLevel)
	assert.Assert(t, strings.Contains(out.String(), "unknown log level"))
}
