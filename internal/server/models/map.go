package models

import (
	"maps"
	"slices"

	"github.com/dmitrijs2005/paintmap/internal/server/templates"
)

// DefaultTitle is the title of a freshly created map.
const DefaultTitle = "無題の地図"

// DefaultScoreFormat is the score display mode of a freshly created map.
const DefaultScoreFormat = 1

// LegendEntry labels one score level. Position in the legend is the level.
type LegendEntry struct {
	Title string `json:"title"`
	Color string `json:"color"`
}

// DefaultLegend returns a new copy of the four-level starter legend.
func DefaultLegend() []LegendEntry {
	return []LegendEntry{
		{Title: "項目1", Color: "#FFFFFF"},
		{Title: "項目2", Color: "#75FBFD"},
		{Title: "項目3", Color: "#FFFF54"},
		{Title: "項目4", Color: "#EA3323"},
	}
}

// Map is the annotation record owned by one account.
type Map struct {
	Type          string             `json:"type"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Legend        []LegendEntry      `json:"legend"`
	ScoreFormat   int                `json:"score_format"`
	Data          map[string]float64 `json:"data"`
	ShareLevel    int                `json:"share_level"`
	LastUpdate    int64              `json:"last_update"`
	NonZeroLegend string             `json:"non_zero_legend,omitempty"`
}

// NewDefaultMap builds the map every account starts with.
func NewDefaultMap(mapType string, shareLevel int, lastUpdate int64) Map {
	return Map{
		Type:        mapType,
		Title:       DefaultTitle,
		Legend:      DefaultLegend(),
		ScoreFormat: DefaultScoreFormat,
		Data:        map[string]float64{},
		ShareLevel:  shareLevel,
		LastUpdate:  lastUpdate,
	}
}

// Shared reports whether anonymous viewers may read the map.
func (m Map) Shared() bool {
	return m.ShareLevel > 0
}

// Clone returns a copy that shares no slices or maps with m.
func (m Map) Clone() Map {
	c := m
	c.Legend = slices.Clone(m.Legend)
	c.Data = maps.Clone(m.Data)
	if c.Data == nil {
		c.Data = map[string]float64{}
	}
	return c
}

// MapView is a map merged with the rendering fields of its template.
// Content (including type) comes from the map, the rest from the template.
type MapView struct {
	Map
	Position      templates.Position `json:"position"`
	Source        string             `json:"source"`
	FillLayer     string             `json:"fillLayer"`
	OutlineLayer  string             `json:"outlineLayer,omitempty"`
	MinZoom       int                `json:"minZoom"`
	MaxZoom       int                `json:"maxZoom"`
	WorldCopyJump int                `json:"worldCopyJump,omitempty"`
}

// NewMapView merges m with the template for its type.
func NewMapView(m Map) MapView {
	t := templates.Lookup(m.Type)
	return MapView{
		Map:           m.Clone(),
		Position:      t.Position,
		Source:        t.Source,
		FillLayer:     t.FillLayer,
		OutlineLayer:  t.OutlineLayer,
		MinZoom:       t.MinZoom,
		MaxZoom:       t.MaxZoom,
		WorldCopyJump: t.WorldCopyJump,
	}
}
