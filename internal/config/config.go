// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package config loads the YAML configuration shared by the command
// line tools.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/gogama/geokit"
	"github.com/gogama/geokit/srs"

	"gopkg.in/yaml.v3"
)

// Config is the root of the configuration file.
type Config struct {
	Catalog []Entry `yaml:"catalog,omitempty"`
	Output  Output  `yaml:"output,omitempty"`
}

// Entry is an extra catalog definition. Exactly one of Proj4 and WKT
// must be set.
type Entry struct {
	Code            int    `yaml:"code"`
	Name            string `yaml:"name,omitempty"`
	Kind            string `yaml:"kind,omitempty"` // geographic, projected, ...; derived if empty
	Proj4           string `yaml:"proj4,omitempty"`
	WKT             string `yaml:"wkt,omitempty"`
	LatLong         bool   `yaml:"lat_long,omitempty"`
	NorthingEasting bool   `yaml:"northing_easting,omitempty"`
}

// Output holds the default output options of the tools.
type Output struct {
	Format    string `yaml:"format,omitempty"`     // wkt, json, gml, kml or wkb
	ByteOrder string `yaml:"byte_order,omitempty"` // ndr or xdr
	Variant   string `yaml:"variant,omitempty"`    // iso or extended
}

// Load reads and parses the YAML configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Output.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadOptional is like Load but returns an empty configuration when
// path is empty or names a file that does not exist.
func LoadOptional(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}
	cfg, err := Load(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	return cfg, err
}

// Extend returns base plus the catalog entries of the configuration,
// or base itself if there are none.
func (c *Config) Extend(base *srs.Catalog) (*srs.Catalog, error) {
	if len(c.Catalog) == 0 {
		return base, nil
	}
	entries := make([]srs.Entry, len(c.Catalog))
	for i, e := range c.Catalog {
		var err error
		if entries[i], err = e.entry(); err != nil {
			return nil, err
		}
	}
	return base.With(entries...)
}

func (e Entry) entry() (srs.Entry, error) {
	if e.Code <= 0 {
		return srs.Entry{}, fmt.Errorf("catalog entry %q: code must be positive", e.Name)
	}
	if (e.Proj4 == "") == (e.WKT == "") {
		return srs.Entry{}, fmt.Errorf("catalog entry %d: exactly one of proj4 and wkt is required", e.Code)
	}
	kind, err := parseKind(e.Kind)
	if err != nil {
		return srs.Entry{}, fmt.Errorf("catalog entry %d: %w", e.Code, err)
	}
	return srs.Entry{
		Code:            e.Code,
		Name:            e.Name,
		Kind:            kind,
		Proj4:           e.Proj4,
		WKT:             e.WKT,
		LatLong:         e.LatLong,
		NorthingEasting: e.NorthingEasting,
	}, nil
}

func parseKind(s string) (srs.Kind, error) {
	if s == "" {
		return srs.KindEmpty, nil
	}
	for k := srs.KindGeographic; k <= srs.KindCompound; k++ {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return srs.KindEmpty, fmt.Errorf("unknown kind %q", s)
}

func (o Output) validate() error {
	switch strings.ToLower(o.Format) {
	case "", "wkt", "json", "gml", "kml", "wkb":
	default:
		return fmt.Errorf("unknown output format %q", o.Format)
	}
	switch strings.ToLower(o.ByteOrder) {
	case "", "ndr", "xdr":
	default:
		return fmt.Errorf("unknown byte order %q", o.ByteOrder)
	}
	switch strings.ToLower(o.Variant) {
	case "", "iso", "extended":
	default:
		return fmt.Errorf("unknown WKB variant %q", o.Variant)
	}
	return nil
}

// WKBOptions returns the WKB byte order and variant, defaulting to
// little endian ISO.
func (o Output) WKBOptions() (geokit.ByteOrder, geokit.WKBVariant) {
	order, variant := geokit.NDR, geokit.WKBVariantISO
	if strings.EqualFold(o.ByteOrder, "xdr") {
		order = geokit.XDR
	}
	if strings.EqualFold(o.Variant, "extended") {
		variant = geokit.WKBVariantExtended
	}
	return order, variant
}
