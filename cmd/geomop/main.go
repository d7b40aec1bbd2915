// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command geomop applies a geometry operation to one or two WKT
// geometries and prints the result.
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"sort"
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

	ConfigFile string  `short:"c" long:"config"    env:"GEOKIT_CONFIG" description:"Path to configuration file"`
	Reference  string  `short:"r" long:"srs"       description:"Spatial reference assigned to the inputs"`
	Format     string  `short:"f" long:"format"    description:"Output format for geometry results" choice:"wkt" choice:"json" choice:"gml" choice:"kml" choice:"wkb"`
	Distance   float64 `short:"d" long:"distance"  description:"Buffer distance, simplification tolerance or maximum segment length" default:"1"`
	Segments   int     `long:"segments"            description:"Buffer segments per quarter circle" default:"8"`
	Pattern    string  `long:"pattern"             description:"DE-9IM pattern for the relate operation"`

	Args struct {
		Operation string `positional-arg-name:"operation" description:"Operation name, see --help" required:"true"`
		A         string `positional-arg-name:"a" description:"First geometry as WKT" required:"true"`
		B         string `positional-arg-name:"b" description:"Second geometry as WKT, for binary operations"`
	} `positional-args:"true"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	parser.LongDescription = "Operations: " + strings.Join(operationNames(), ", ")
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
	if opts.Format == "" {
		opts.Format = strings.ToLower(cfg.Output.Format)
	}

	var ref *srs.SpatialReference
	if opts.Reference != "" {
		catalog, err := cfg.Extend(srs.DefaultCatalog())
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to extend catalog")
		}
		if ref, err = catalog.FromUserInput(opts.Reference); err != nil {
			log.Fatal().Err(err).Str("input", opts.Reference).Msg("Failed to interpret reference")
		}
	}

	out, err := apply(opts, ref, cfg.Output)
	if err != nil {
		log.Fatal().Err(err).Str("operation", opts.Args.Operation).Msg("Operation failed")
	}
	fmt.Println(out)
}

type operation struct {
	binary bool
	run    func(a, b *geokit.Geometry, opts Options) (interface{}, error)
}

func predicate(f func(a, b *geokit.Geometry) (bool, error)) operation {
	return operation{binary: true, run: func(a, b *geokit.Geometry, _ Options) (interface{}, error) {
		return f(a, b)
	}}
}

func overlay(f func(a, b *geokit.Geometry) (*geokit.Geometry, error)) operation {
	return operation{binary: true, run: func(a, b *geokit.Geometry, _ Options) (interface{}, error) {
		return f(a, b)
	}}
}

func unary(f func(a *geokit.Geometry, opts Options) (interface{}, error)) operation {
	return operation{run: func(a, _ *geokit.Geometry, opts Options) (interface{}, error) {
		return f(a, opts)
	}}
}

var operations = map[string]operation{
	"area":   unary(func(a *geokit.Geometry, _ Options) (interface{}, error) { return a.Area(), nil }),
	"length": unary(func(a *geokit.Geometry, _ Options) (interface{}, error) { return a.Length(), nil }),
	"centroid": unary(func(a *geokit.Geometry, _ Options) (interface{}, error) {
		return a.Centroid(), nil
	}),
	"boundary": unary(func(a *geokit.Geometry, _ Options) (interface{}, error) {
		return a.Boundary()
	}),
	"convex-hull": unary(func(a *geokit.Geometry, _ Options) (interface{}, error) {
		return a.ConvexHull(), nil
	}),
	"envelope": unary(func(a *geokit.Geometry, _ Options) (interface{}, error) {
		return a.Envelope().String(), nil
	}),
	"buffer": unary(func(a *geokit.Geometry, opts Options) (interface{}, error) {
		return a.Buffer(opts.Distance, opts.Segments)
	}),
	"simplify": unary(func(a *geokit.Geometry, opts Options) (interface{}, error) {
		return a.Simplify(opts.Distance), nil
	}),
	"simplify-topology": unary(func(a *geokit.Geometry, opts Options) (interface{}, error) {
		return a.SimplifyPreserveTopology(opts.Distance), nil
	}),
	"segmentize": unary(func(a *geokit.Geometry, opts Options) (interface{}, error) {
		a.Segmentize(opts.Distance)
		return a, nil
	}),
	"is-valid":  unary(func(a *geokit.Geometry, _ Options) (interface{}, error) { return a.IsValid(), nil }),
	"is-simple": unary(func(a *geokit.Geometry, _ Options) (interface{}, error) { return a.IsSimple(), nil }),
	"is-ring":   unary(func(a *geokit.Geometry, _ Options) (interface{}, error) { return a.IsRing(), nil }),
	"geodesic-length": unary(func(a *geokit.Geometry, _ Options) (interface{}, error) {
		return a.GeodesicLength()
	}),
	"geodesic-area": unary(func(a *geokit.Geometry, _ Options) (interface{}, error) {
		return a.GeodesicArea()
	}),

	"intersection":   overlay((*geokit.Geometry).Intersection),
	"union":          overlay((*geokit.Geometry).Union),
	"difference":     overlay((*geokit.Geometry).Difference),
	"sym-difference": overlay((*geokit.Geometry).SymDifference),

	"equals":     predicate((*geokit.Geometry).Equals),
	"disjoint":   predicate((*geokit.Geometry).Disjoint),
	"intersects": predicate((*geokit.Geometry).Intersects),
	"touches":    predicate((*geokit.Geometry).Touches),
	"crosses":    predicate((*geokit.Geometry).Crosses),
	"within":     predicate((*geokit.Geometry).Within),
	"contains":   predicate((*geokit.Geometry).Contains),
	"overlaps":   predicate((*geokit.Geometry).Overlaps),
	"covers":     predicate((*geokit.Geometry).Covers),
	"covered-by": predicate((*geokit.Geometry).CoveredBy),
	"distance": {binary: true, run: func(a, b *geokit.Geometry, _ Options) (interface{}, error) {
		return a.Distance(b)
	}},
	"relate": {binary: true, run: func(a, b *geokit.Geometry, opts Options) (interface{}, error) {
		if opts.Pattern != "" {
			return a.RelatePattern(b, opts.Pattern)
		}
		m, err := a.Relate(b)
		if err != nil {
			return nil, err
		}
		return m.String(), nil
	}},
}

func operationNames() []string {
	names := make([]string, 0, len(operations))
	for name := range operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// apply parses the inputs named in opts, runs the operation and
// formats the result.
func apply(opts Options, ref *srs.SpatialReference, out config.Output) (string, error) {
	op, ok := operations[opts.Args.Operation]
	if !ok {
		return "", fmt.Errorf("unknown operation %q", opts.Args.Operation)
	}
	a, err := geokit.FromWKT(opts.Args.A)
	if err != nil {
		return "", err
	}
	var b *geokit.Geometry
	if op.binary {
		if opts.Args.B == "" {
			return "", fmt.Errorf("operation %s needs two geometries", opts.Args.Operation)
		}
		if b, err = geokit.FromWKT(opts.Args.B); err != nil {
			return "", err
		}
	}
	if ref != nil {
		a.AssignSRS(ref)
		if b != nil {
			b.AssignSRS(ref)
		}
	}

	log.Debug().
		Str("operation", opts.Args.Operation).
		Str("a", a.Name()).
		Bool("a_empty", a.IsEmpty()).
		Msg("Applying operation")

	result, err := op.run(a, b, opts)
	if err != nil {
		return "", err
	}
	switch v := result.(type) {
	case *geokit.Geometry:
		return encode(v, opts.Format, out)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	default:
		return fmt.Sprint(v), nil
	}
}

func encode(g *geokit.Geometry, format string, out config.Output) (string, error) {
	switch format {
	case "", "wkt":
		return g.WKT(), nil
	case "json":
		b, err := g.JSON()
		return string(b), err
	case "gml":
		return g.GML(), nil
	case "kml":
		return g.KML(), nil
	case "wkb":
		order, variant := out.WKBOptions()
		b, err := g.WKB(order, variant)
		return hex.EncodeToString(b), err
	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
}
