package style

import (
	"github.com/gogpu/graphview/text"
)

// Style is a fully resolved appearance for nodes and edges.
type Style struct {
	Node NodeStyle `mapstructure:"node" toml:"node"`
	Edge EdgeStyle `mapstructure:"edge" toml:"edge"`
}

// NodeStyle describes a node: a filled circle of radius Size with a
// border, an icon drawn on top and a label below.
type NodeStyle struct {
	Size   float64     `mapstructure:"size" toml:"size"`
	Color  string      `mapstructure:"color" toml:"color"`
	Border BorderStyle `mapstructure:"border" toml:"border"`
	Icon   IconStyle   `mapstructure:"icon" toml:"icon"`
	Label  LabelStyle  `mapstructure:"label" toml:"label"`
}

// BorderStyle is the ring around a node.
type BorderStyle struct {
	Width float64 `mapstructure:"width" toml:"width"`
	Color string  `mapstructure:"color" toml:"color"`
}

// IconStyle is the text drawn centered on a node.
type IconStyle struct {
	Type       text.Mode `mapstructure:"type" toml:"type"`
	FontFamily string    `mapstructure:"fontFamily" toml:"fontFamily"`
	FontSize   float64   `mapstructure:"fontSize" toml:"fontSize"`
	Content    string    `mapstructure:"content" toml:"content"`
	Color      string    `mapstructure:"color" toml:"color"`
}

// LabelStyle is the text drawn below a node on a padded background.
type LabelStyle struct {
	Type            text.Mode `mapstructure:"type" toml:"type"`
	FontFamily      string    `mapstructure:"fontFamily" toml:"fontFamily"`
	FontSize        float64   `mapstructure:"fontSize" toml:"fontSize"`
	Content         string    `mapstructure:"content" toml:"content"`
	Color           string    `mapstructure:"color" toml:"color"`
	BackgroundColor string    `mapstructure:"backgroundColor" toml:"backgroundColor"`
	Padding         float64   `mapstructure:"padding" toml:"padding"`
}

// EdgeStyle describes an edge line.
type EdgeStyle struct {
	Width float64 `mapstructure:"width" toml:"width"`
	Color string  `mapstructure:"color" toml:"color"`
}

// IconSpec returns the rasterizer input for the icon.
func (s NodeStyle) IconSpec() text.Spec {
	return text.Spec{Mode: s.Icon.Type, Content: s.Icon.Content, FontFamily: s.Icon.FontFamily, FontSize: s.Icon.FontSize}
}

// LabelSpec returns the rasterizer input for the label.
func (s NodeStyle) LabelSpec() text.Spec {
	return text.Spec{Mode: s.Label.Type, Content: s.Label.Content, FontFamily: s.Label.FontFamily, FontSize: s.Label.FontSize}
}
