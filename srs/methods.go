// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package srs

import "strings"

// WKT projection method names.
const (
	TransverseMercator     = "Transverse_Mercator"
	Mercator1SP            = "Mercator_1SP"
	Mercator2SP            = "Mercator_2SP"
	PseudoMercator         = "Popular_Visualisation_Pseudo_Mercator"
	LambertConformalConic1 = "Lambert_Conformal_Conic_1SP"
	LambertConformalConic2 = "Lambert_Conformal_Conic_2SP"
	Equirectangular        = "Equirectangular"
	Orthographic           = "Orthographic"
	Mollweide              = "Mollweide"
)

// WKT projection parameter names.
const (
	paramLatOrigin = "latitude_of_origin"
	paramCentralMe = "central_meridian"
	paramScale     = "scale_factor"
	paramFE        = "false_easting"
	paramFN        = "false_northing"
	paramSP1       = "standard_parallel_1"
	paramSP2       = "standard_parallel_2"
)

// methodParam describes one parameter of a projection method.
type methodParam struct {
	name string
	// proj4 is the +key used in Proj4 strings.
	proj4 string
	// angular parameters are in the angular unit of the geographic
	// base; the others are linear (false easting/northing) or
	// unitless (scale).
	angular bool
	linear  bool
	def     float64
}

type method struct {
	name  string
	esri  string
	proj4 string
	// epsg is the EPSG operation method code used in GML.
	epsg   string
	params []methodParam
}

var (
	mpLatOrigin = methodParam{name: paramLatOrigin, proj4: "lat_0", angular: true}
	mpCentral   = methodParam{name: paramCentralMe, proj4: "lon_0", angular: true}
	mpScale     = methodParam{name: paramScale, proj4: "k", def: 1}
	mpFE        = methodParam{name: paramFE, proj4: "x_0", linear: true}
	mpFN        = methodParam{name: paramFN, proj4: "y_0", linear: true}
	mpSP1       = methodParam{name: paramSP1, proj4: "lat_1", angular: true}
	mpSP2       = methodParam{name: paramSP2, proj4: "lat_2", angular: true}
	mpLatTS     = methodParam{name: paramSP1, proj4: "lat_ts", angular: true}
)

var methods = []method{
	{
		name: TransverseMercator, esri: "Transverse_Mercator", proj4: "tmerc", epsg: "9807",
		params: []methodParam{mpLatOrigin, mpCentral, mpScale, mpFE, mpFN},
	},
	{
		name: Mercator1SP, esri: "Mercator", proj4: "merc", epsg: "9804",
		params: []methodParam{mpCentral, mpScale, mpFE, mpFN},
	},
	{
		name: Mercator2SP, esri: "Mercator", proj4: "merc", epsg: "9805",
		params: []methodParam{mpLatTS, mpCentral, mpFE, mpFN},
	},
	{
		name: PseudoMercator, esri: "Mercator_Auxiliary_Sphere", proj4: "merc", epsg: "1024",
		params: []methodParam{mpLatOrigin, mpCentral, mpScale, mpFE, mpFN},
	},
	{
		name: LambertConformalConic1, esri: "Lambert_Conformal_Conic", proj4: "lcc", epsg: "9801",
		params: []methodParam{mpLatOrigin, mpCentral, mpScale, mpFE, mpFN},
	},
	{
		name: LambertConformalConic2, esri: "Lambert_Conformal_Conic", proj4: "lcc", epsg: "9802",
		params: []methodParam{mpSP1, mpSP2, mpLatOrigin, mpCentral, mpFE, mpFN},
	},
	{
		name: Equirectangular, esri: "Equidistant_Cylindrical", proj4: "eqc", epsg: "1028",
		params: []methodParam{mpLatOrigin, mpCentral, mpLatTS, mpFE, mpFN},
	},
	{
		name: Orthographic, esri: "Orthographic", proj4: "ortho", epsg: "9840",
		params: []methodParam{mpLatOrigin, mpCentral, mpFE, mpFN},
	},
	{
		name: Mollweide, esri: "Mollweide", proj4: "moll", epsg: "",
		params: []methodParam{mpCentral, mpFE, mpFN},
	},
}

// findMethod looks a method up by its WKT name, ignoring case.
func findMethod(name string) *method {
	for i := range methods {
		if strings.EqualFold(methods[i].name, name) {
			return &methods[i]
		}
	}
	return nil
}

func findMethodByEPSG(code string) *method {
	for i := range methods {
		if methods[i].epsg != "" && methods[i].epsg == code {
			return &methods[i]
		}
	}
	return nil
}

func (m *method) param(name string) *methodParam {
	for i := range m.params {
		if strings.EqualFold(m.params[i].name, name) {
			return &m.params[i]
		}
	}
	return nil
}

// esriParamNames maps WKT parameter names to their ESRI spelling.
var esriParamNames = map[string]string{
	paramLatOrigin: "Latitude_Of_Origin",
	paramCentralMe: "Central_Meridian",
	paramScale:     "Scale_Factor",
	paramFE:        "False_Easting",
	paramFN:        "False_Northing",
	paramSP1:       "Standard_Parallel_1",
	paramSP2:       "Standard_Parallel_2",
}

// epsgParamCodes maps WKT parameter names to EPSG parameter codes.
var epsgParamCodes = map[string]string{
	paramLatOrigin: "8801",
	paramCentralMe: "8802",
	paramScale:     "8805",
	paramFE:        "8806",
	paramFN:        "8807",
	paramSP1:       "8823",
	paramSP2:       "8824",
}
