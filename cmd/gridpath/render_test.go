package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/geom"
	"github.com/pdrpinto/gridastar/internal/config"
)

func TestRenderMapPlain(t *testing.T) {
	costs := []byte{
		0, 0, gridastar.Impassable, 0,
		0, 100, gridastar.Impassable, 0,
		0, 0, 0, 10,
	}
	ov := overlay{
		start:       geom.Coord{X: 0, Y: 0},
		destination: geom.Coord{X: 3, Y: 0},
		path:        []geom.Coord{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 1}, {X: 3, Y: 0}},
		explored:    func(c geom.Coord) bool { return c == geom.Coord{X: 0, Y: 1} },
	}

	got := renderMap(newPalette(&bytes.Buffer{}, false), costs, 4, ov)
	assert.Equal(t, "S.#D\n:*#*\n..*1\n", got)
}

func TestRenderMapColor(t *testing.T) {
	costs := []byte{0, gridastar.Impassable}
	ov := overlay{start: geom.Coord{}, destination: geom.Coord{X: 5}}

	got := renderMap(newPalette(&bytes.Buffer{}, true), costs, 2, ov)
	assert.Contains(t, got, "\x1b[")
	assert.Contains(t, got, "#")
}

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, colorEnabled(config.ColorAlways, &buf))
	assert.False(t, colorEnabled(config.ColorNever, &buf))
	assert.False(t, colorEnabled(config.ColorAuto, &buf))
}
