// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command srsinfo prints a spatial reference in the encodings the srs
// package supports.
package main

import (
	"fmt"
	"os"

	"github.com/gogama/geokit/internal/config"
	"github.com/gogama/geokit/internal/logger"
	"github.com/gogama/geokit/srs"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string   `short:"c" long:"config" env:"GEOKIT_CONFIG" description:"Path to configuration file with extra catalog entries"`
	Format     []string `short:"f" long:"format" description:"Encodings to print (repeatable)" choice:"summary" choice:"wkt" choice:"pretty" choice:"esri" choice:"proj4" choice:"xml" choice:"mi" default:"summary" default:"pretty" default:"proj4"`
	Validate   bool     `short:"v" long:"validate" description:"Report validation problems and exit non-zero if any"`

	Args struct {
		Reference string `positional-arg-name:"reference" description:"EPSG:n, URN, WKT, Proj4 or any other supported form" required:"true"`
	} `positional-args:"true"`
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

	r, err := catalog.FromUserInput(opts.Args.Reference)
	if err != nil {
		log.Fatal().Err(err).Str("input", opts.Args.Reference).Msg("Failed to interpret reference")
	}
	log.Debug().
		Str("name", r.Name()).
		Stringer("kind", r.Kind()).
		Int("catalog_size", catalog.Len()).
		Msg("Reference loaded")

	for _, format := range opts.Format {
		if err := printReference(r, format); err != nil {
			log.Error().Err(err).Str("format", format).Msg("Encoding failed")
		}
	}

	if opts.Validate {
		if msg := r.Validate(); msg != "" {
			log.Error().Str("problem", msg).Msg("Reference is not valid")
			os.Exit(2)
		}
		log.Info().Msg("Reference is valid")
	}
}

func printReference(r *srs.SpatialReference, format string) error {
	switch format {
	case "summary":
		fmt.Printf("Name:      %s\n", r.Name())
		fmt.Printf("Kind:      %s\n", r.Kind())
		if code := r.AuthorityCode(""); code != "" {
			fmt.Printf("Authority: %s:%s\n", r.AuthorityName(""), code)
		}
		if r.SemiMajor() != 0 {
			fmt.Printf("Ellipsoid: a=%.3f 1/f=%.9f\n", r.SemiMajor(), r.InvFlattening())
		}
		if r.IsProjected() || r.IsGeocentric() {
			u := r.LinearUnits()
			fmt.Printf("Units:     %s (%g)\n", u.Name, u.Factor)
		} else if r.IsGeographic() {
			u := r.AngularUnits()
			fmt.Printf("Units:     %s (%g)\n", u.Name, u.Factor)
		}
		fmt.Printf("Lat/long:  %t\n", r.AxisOrderSwapped())
	case "wkt":
		fmt.Println(r.WKT())
	case "pretty":
		fmt.Println(r.PrettyWKT(false))
	case "esri":
		e := r.Clone()
		e.MorphToESRI()
		fmt.Println(e.WKT())
	case "proj4":
		p4, err := r.Proj4()
		if err != nil {
			return err
		}
		fmt.Println(p4)
	case "xml":
		x, err := r.XML()
		if err != nil {
			return err
		}
		fmt.Println(x)
	case "mi":
		mi, err := r.MICoordSys()
		if err != nil {
			return err
		}
		fmt.Println(mi)
	}
	return nil
}
