// Copyright 2021 Converter Systems LLC. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/awcullen/uacodec/ua"
	"github.com/gammazero/workerpool"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var extensions = map[ua.EncodingFormat]string{
	ua.EncodingFormatBinary: ".uabin",
	ua.EncodingFormatXML:    ".xml",
	ua.EncodingFormatJSON:   ".json",
}

func newTranscodeCmd(a *app) *cobra.Command {
	var (
		from, to      string
		nonReversible bool
		workers       int
		outDir        string
	)
	cmd := &cobra.Command{
		Use:   "transcode FILE...",
		Short: "Transcode files holding one encoded ExtensionObject each",
		Long: `Transcode decodes the ExtensionObject held by each file and writes it in the
target encoding, next to the input with the extension of the target encoding.

Examples:
  uacodec transcode --from binary --to xml request.uabin
  uacodec transcode --from xml --to json --non-reversible *.xml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := ua.ParseEncodingFormat(from)
			if err != nil {
				return err
			}
			dst, err := ua.ParseEncodingFormat(to)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("workers") {
				a.cfg.Workers = workers
			}
			reversible := a.cfg.Reversible && !nonReversible
			t := &transcoder{
				ec:         a.cfg.EncodingContext(),
				from:       src,
				to:         dst,
				reversible: reversible,
				outDir:     outDir,
			}
			return t.run(a.log, a.cfg.Workers, args)
		},
	}
	cmd.Flags().StringVarP(&from, "from", "f", "binary", "encoding of the input: binary, xml or json")
	cmd.Flags().StringVarP(&to, "to", "t", "json", "encoding of the output: binary, xml or json")
	cmd.Flags().BoolVar(&nonReversible, "non-reversible", false, "write the non-reversible json form")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "number of files transcoded in parallel (default from config)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "directory of the output files (default is the directory of each input)")
	return cmd
}

type transcoder struct {
	ec         ua.EncodingContext
	from, to   ua.EncodingFormat
	reversible bool
	outDir     string
}

// run transcodes the files on a pool of workers, logging each failure.
func (t *transcoder) run(log *logrus.Logger, workers int, files []string) error {
	if workers < 1 {
		workers = 1
	}
	wp := workerpool.New(workers)
	var failed int32
	for _, file := range files {
		file := file
		wp.Submit(func() {
			entry := log.WithField("file", file)
			out, err := t.transcodeFile(file)
			if err != nil {
				atomic.AddInt32(&failed, 1)
				entry.WithFields(logrus.Fields{
					"status": ua.StatusCodeOf(err).Symbol(),
					"err":    err,
				}).Errorln("transcode failed")
				return
			}
			entry.WithField("output", out).Infoln("transcoded")
		})
	}
	wp.StopWait()
	if n := atomic.LoadInt32(&failed); n > 0 {
		return errors.Errorf("%d of %d files failed", n, len(files))
	}
	return nil
}

// outputPath returns the path of the transcoded file.
func (t *transcoder) outputPath(file string) string {
	dir, name := filepath.Split(file)
	if t.outDir != "" {
		dir = t.outDir
	}
	return filepath.Join(dir, strings.TrimSuffix(name, filepath.Ext(name))+extensions[t.to])
}

func (t *transcoder) transcodeFile(file string) (string, error) {
	in, err := os.ReadFile(file)
	if err != nil {
		return "", errors.Wrap(err, "reading input")
	}
	out := t.outputPath(file)
	if filepath.Clean(out) == filepath.Clean(file) {
		return "", errors.Errorf("output %s would overwrite the input", out)
	}
	buf := &bytes.Buffer{}
	if err := t.transcode(in, buf); err != nil {
		return "", err
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return "", errors.Wrap(err, "writing output")
	}
	return out, nil
}

// transcode decodes the ExtensionObject in the source encoding and writes it in the target encoding.
func (t *transcoder) transcode(in []byte, buf *bytes.Buffer) error {
	value, err := ua.DecodeExtensionObject(t.ec, t.from, bytes.NewReader(in))
	if err != nil {
		return errors.Wrapf(err, "decoding %s", t.from)
	}
	var enc ua.Encoder
	if t.to == ua.EncodingFormatJSON && !t.reversible {
		enc = ua.NewNonReversibleJSONEncoder(buf, t.ec)
	} else if enc, err = ua.NewEncoder(buf, t.ec, t.to); err != nil {
		return err
	}
	if err := enc.WriteExtensionObject("ExtensionObject", value); err != nil {
		return errors.Wrapf(err, "encoding %s", t.to)
	}
	return nil
}
