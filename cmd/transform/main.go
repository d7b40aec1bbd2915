// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command transform reads coordinates or WKT geometries from standard
// input, one per line, and writes them transformed between two
// spatial references.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gogama/geokit"
	"github.com/gogama/geokit/internal/config"
	"github.com/gogama/geokit/internal/logger"
	"github.com/gogama/geokit/srs"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config" env:"GEOKIT_CONFIG" description:"Path to configuration file with extra catalog entries"`
	Source     string `short:"s" long:"src"    description:"Source reference" required:"true"`
	Target     string `short:"t" long:"dst"    description:"Target reference" required:"true"`
	WKT        bool   `short:"w" long:"wkt"    description:"Read and write WKT geometries instead of coordinates"`
	Precision  int    `short:"p" long:"precision" description:"Digits after the decimal point for coordinates" default:"6"`
	KeepGoing  bool   `short:"k" long:"keep-going" description:"Log failed lines and continue"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg, err := config.LoadOptional(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	catalog, err := cfg.Extend(srs.DefaultCatalog())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to extend catalog")
	}

	src, err := catalog.FromUserInput(opts.Source)
	if err != nil {
		log.Fatal().Err(err).Str("input", opts.Source).Msg("Failed to interpret source reference")
	}
	dst, err := catalog.FromUserInput(opts.Target)
	if err != nil {
		log.Fatal().Err(err).Str("input", opts.Target).Msg("Failed to interpret target reference")
	}
	t, err := srs.NewTransformation(src, dst)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create transformation")
	}

	log.Debug().
		Str("src", src.Name()).
		Str("dst", dst.Name()).
		Bool("wkt", opts.WKT).
		Msg("Transforming")

	n, failed, err := run(os.Stdin, os.Stdout, t, opts)
	if err != nil {
		log.Fatal().Err(err).Msg("Transformation failed")
	}
	log.Info().Int("lines", n).Int("failed", failed).Msg("Done")
	if failed > 0 {
		os.Exit(2)
	}
}

// run transforms every non-blank line of r to w. It returns the number
// of lines read and the number that failed. Unless opts.KeepGoing is
// set the first failure is returned as an error.
func run(r io.Reader, w io.Writer, t *srs.Transformation, opts Options) (n, failed int, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 64*1024*1024)
	out := bufio.NewWriter(w)
	defer out.Flush()

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		n++
		var result string
		if opts.WKT {
			result, err = transformWKT(line, t)
		} else {
			result, err = transformCoords(line, t, opts.Precision)
		}
		if err != nil {
			failed++
			if !opts.KeepGoing {
				return n, failed, fmt.Errorf("line %d: %w", n, err)
			}
			log.Warn().Err(err).Int("line", n).Msg("Skipping line")
			continue
		}
		if _, err = fmt.Fprintln(out, result); err != nil {
			return n, failed, err
		}
	}
	return n, failed, scanner.Err()
}

func transformWKT(line string, t *srs.Transformation) (string, error) {
	g, err := geokit.FromWKT(line)
	if err != nil {
		return "", err
	}
	g.AssignSRS(t.Source())
	if err = g.Transform(t); err != nil {
		return "", err
	}
	return g.WKT(), nil
}

func transformCoords(line string, t *srs.Transformation, precision int) (string, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool { return r == ' ' || r == '\t' || r == ',' })
	if len(fields) < 2 || len(fields) > 3 {
		return "", fmt.Errorf("expected 2 or 3 coordinates, got %d", len(fields))
	}
	var v [3]float64
	for i, f := range fields {
		var err error
		if v[i], err = strconv.ParseFloat(f, 64); err != nil {
			return "", err
		}
	}
	p, err := t.TransformPoint(v[0], v[1], v[2])
	if err != nil {
		return "", err
	}
	parts := []string{
		strconv.FormatFloat(p.X, 'f', precision, 64),
		strconv.FormatFloat(p.Y, 'f', precision, 64),
	}
	if len(fields) == 3 {
		parts = append(parts, strconv.FormatFloat(p.Z, 'f', precision, 64))
	}
	return strings.Join(parts, " "), nil
}
