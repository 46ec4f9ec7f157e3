// Package visualization renders palettes as Graphviz DOT graphs or HTML
// swatch sheets.
package visualization

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nvandessel/chromaroot/internal/palette"
)

// Format specifies the output format for palette rendering.
type Format string

const (
	FormatDOT  Format = "dot"
	FormatJSON Format = "json"
	FormatHTML Format = "html"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatDOT, FormatJSON, FormatHTML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (valid: dot, json, html)", s)
	}
}

// RenderDOT produces a Graphviz DOT graph with one filled node per swatch.
// Swatches that rotate the same fraction are chained in angle order, so a
// saved wheel renders as a ring.
func RenderDOT(swatches []palette.Swatch) string {
	var b strings.Builder
	b.WriteString("graph chromaroot {\n")
	b.WriteString("  layout=circo;\n")
	b.WriteString("  node [shape=circle, style=filled, fontname=\"Helvetica\", fontsize=10];\n\n")

	for _, sw := range swatches {
		fmt.Fprintf(&b, "  %q [label=%q, fillcolor=%q, fontcolor=%q, tooltip=%q];\n",
			sw.Name, sw.Name+"\n"+sw.CSS, sw.CSS, TextColor(sw.CSS), sw.CMYK.String())
	}

	rings := wheelRings(swatches)
	if len(rings) > 0 {
		b.WriteString("\n")
	}
	for _, ring := range rings {
		for i := 1; i < len(ring); i++ {
			fmt.Fprintf(&b, "  %q -- %q;\n", ring[i-1].Name, ring[i].Name)
		}
		if len(ring) > 2 {
			fmt.Fprintf(&b, "  %q -- %q;\n", ring[len(ring)-1].Name, ring[0].Name)
		}
	}

	b.WriteString("}\n")
	return b.String()
}

// wheelRings groups fraction-seeded swatches by fraction and base angle,
// ordered by rotation angle. Groups of one are dropped.
func wheelRings(swatches []palette.Swatch) [][]palette.Swatch {
	groups := make(map[string][]palette.Swatch)
	var keys []string
	for _, sw := range swatches {
		seed := sw.Seed
		if seed.Kind != palette.SeedFraction || seed.Fraction == nil || seed.Rotation == nil {
			continue
		}
		key := fmt.Sprintf("%s|%d", seed.Fraction, seed.Rotation.BaseAngle)
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], sw)
	}
	sort.Strings(keys)

	var rings [][]palette.Swatch
	for _, key := range keys {
		ring := groups[key]
		if len(ring) < 2 {
			continue
		}
		sort.SliceStable(ring, func(i, j int) bool {
			return ring[i].Seed.Rotation.Angle() < ring[j].Seed.Rotation.Angle()
		})
		rings = append(rings, ring)
	}
	return rings
}

// TextColor picks black or white text for legibility on the given
// background, by CIE L* lightness. Unparseable colors get black.
func TextColor(css string) string {
	c, err := colorful.Hex(css)
	if err != nil {
		return "#000000"
	}
	if l, _, _ := c.Lab(); l < 0.6 {
		return "#ffffff"
	}
	return "#000000"
}
