// Package templates is the static registry of map templates: the
// cartographic rendering parameters merged into every map-shaped response.
package templates

import "github.com/dmitrijs2005/paintmap/internal/common"

// Position is the initial viewport of a map.
type Position struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Zoom int     `json:"zoom"`
}

// Template describes how a map type is rendered.
type Template struct {
	Type          string
	Position      Position
	Source        string
	FillLayer     string
	OutlineLayer  string
	MinZoom       int
	MaxZoom       int
	WorldCopyJump int
}

const (
	sourceKSJ          = `<a href="https://nlftp.mlit.go.jp/ksj/gml/datalist/KsjTmplt-N03-v3_1.html" target="_blank">国土数値情報 [国交省]</a> を加工`
	sourceGun          = `<a href="https://gunmap.booth.pm/items/3053727" target="_blank">郡地図 Ver 1.1</a>を加工`
	sourceNaturalEarth = `<a href="https://www.naturalearthdata.com/" target="_blank">Natural Earth</a>を加工`
)

var japan = Position{Lat: 38.5, Lng: 138, Zoom: 6}

// order fixes the listing order of Types.
var order = []string{"city", "ward", "pref", "1920", "gun", "world"}

var registry = map[string]Template{
	"city": {
		Type:         "city",
		Position:     japan,
		Source:       sourceKSJ,
		FillLayer:    "data/city.json",
		OutlineLayer: "data/prefecture.json",
		MinZoom:      5,
		MaxZoom:      12,
	},
	"ward": {
		Type:         "ward",
		Position:     japan,
		Source:       sourceKSJ,
		FillLayer:    "data/ward.json",
		OutlineLayer: "data/prefecture.json",
		MinZoom:      5,
		MaxZoom:      12,
	},
	"pref": {
		Type:      "pref",
		Position:  japan,
		Source:    sourceKSJ,
		FillLayer: "data/prefecture.json",
		MinZoom:   5,
		MaxZoom:   12,
	},
	"1920": {
		Type:         "1920",
		Position:     japan,
		Source:       sourceKSJ,
		FillLayer:    "data/1920-city.json",
		OutlineLayer: "data/1920-pref.json",
		MinZoom:      5,
		MaxZoom:      12,
	},
	"gun": {
		Type:         "gun",
		Position:     japan,
		Source:       sourceGun,
		FillLayer:    "data/gun.json",
		OutlineLayer: "data/kuni.json",
		MinZoom:      5,
		MaxZoom:      12,
	},
	"world": {
		Type:          "world",
		Position:      Position{Lat: 37, Lng: 208, Zoom: 2},
		Source:        sourceNaturalEarth,
		FillLayer:     "data/world.json",
		MinZoom:       2,
		MaxZoom:       5,
		WorldCopyJump: 1,
	},
}

// Lookup returns the template for mapType, or the city template when the
// type is unknown.
func Lookup(mapType string) Template {
	if t, ok := registry[mapType]; ok {
		return t
	}
	return registry[common.DefaultMapType]
}

// Known reports whether mapType has its own template.
func Known(mapType string) bool {
	_, ok := registry[mapType]
	return ok
}

// Types lists the registered map types.
func Types() []string {
	out := make([]string, len(order))
	copy(out, order)
	return out
}
