package main

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/geom"
)

const sampleScenario = `
map: |
  ....#...
  .3..#...
  ........
start: [0, 0]
destination: [7, 0]
queries:
  - {id: top, start: [0, 0], destination: [7, 0]}
  - {id: wall, start: [0, 2], destination: [4, 0]}
`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseScenario(t *testing.T) {
	s, err := parseScenario([]byte(sampleScenario))
	require.NoError(t, err)
	assert.Equal(t, 8, s.Width())
	assert.Equal(t, 3, s.Height())
	assert.Equal(t, geom.Coord{X: 7, Y: 0}, s.Destination.coord())
	require.Len(t, s.Queries, 2)
	assert.Equal(t, "wall", s.Queries[1].ID)

	jobs := s.Jobs()
	require.Len(t, jobs, 2)
	assert.Equal(t, gridastar.Job{ID: "top", Start: geom.Coord{}, Destination: geom.Coord{X: 7}}, jobs[0])
}

func TestScenarioCosts(t *testing.T) {
	s, err := parseScenario([]byte(sampleScenario))
	require.NoError(t, err)

	costs := s.Costs(discardLogger())
	assert.Equal(t, byte(0), costs.At(0, 0))
	assert.Equal(t, byte(gridastar.Impassable), costs.At(4, 1))
	assert.Equal(t, byte(75), costs.At(1, 1))
}

func TestScenarioBorder(t *testing.T) {
	s, err := parseScenario([]byte("map: |\n  ....\n  ....\n  ....\nborder: true\n"))
	require.NoError(t, err)

	costs := s.Costs(discardLogger())
	assert.Equal(t, byte(gridastar.Impassable), costs.At(0, 0))
	assert.Equal(t, byte(gridastar.Impassable), costs.At(3, 2))
	assert.Equal(t, byte(0), costs.At(1, 1))
}

func TestScenarioWithoutQueriesUsesMainRequest(t *testing.T) {
	s, err := parseScenario([]byte("map: \"...\"\nstart: [0, 0]\ndestination: [2, 0]\n"))
	require.NoError(t, err)
	jobs := s.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "main", jobs[0].ID)
	assert.Equal(t, geom.Coord{X: 2}, jobs[0].Destination)
}

func TestParseScenarioErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty map", "map: \"\"\n"},
		{"ragged rows", "map: |\n  ...\n  ..\n"},
		{"unknown cell", "map: |\n  ..x\n"},
		{"bad yaml", "map: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseScenario([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}
