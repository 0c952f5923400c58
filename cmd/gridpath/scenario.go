package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/geom"
	"github.com/pdrpinto/gridastar/grid"
)

// point is an [x, y] pair in scenario files.
type point [2]int

func (p point) coord() geom.Coord { return geom.Coord{X: p[0], Y: p[1]} }

// Scenario is a map plus the requests to run on it.
//
//	map: |
//	  ....#...
//	  .3..#...
//	  ........
//	start: [0, 0]
//	destination: [7, 0]
//	border: false
//	queries:
//	  - {id: corner, start: [0, 2], destination: [7, 2]}
//
// In the map '.' is free, '#' is impassable and '1'..'9' are graded costs.
// Line i of the map is row y=i.
type Scenario struct {
	Map         string  `yaml:"map"`
	Start       point   `yaml:"start"`
	Destination point   `yaml:"destination"`
	Border      bool    `yaml:"border,omitempty"`
	Queries     []query `yaml:"queries,omitempty"`

	rows []string
}

type query struct {
	ID          string `yaml:"id"`
	Start       point  `yaml:"start"`
	Destination point  `yaml:"destination"`
}

func loadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	s, err := parseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func parseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}

	for _, line := range strings.Split(s.Map, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			continue
		}
		if len(s.rows) > 0 && len(line) != len(s.rows[0]) {
			return nil, fmt.Errorf("map row %d has %d cells, want %d", len(s.rows), len(line), len(s.rows[0]))
		}
		for x, r := range line {
			if _, ok := cellCost(r); !ok {
				return nil, fmt.Errorf("map row %d column %d: unknown cell %q", len(s.rows), x, r)
			}
		}
		s.rows = append(s.rows, line)
	}
	if len(s.rows) == 0 {
		return nil, fmt.Errorf("scenario map is empty")
	}
	return &s, nil
}

func (s *Scenario) Width() int  { return len(s.rows[0]) }
func (s *Scenario) Height() int { return len(s.rows) }

// cellCost maps a map character to its movement cost.
func cellCost(r rune) (byte, bool) {
	switch {
	case r == '.':
		return 0, true
	case r == '#':
		return gridastar.Impassable, true
	case r >= '1' && r <= '9':
		return byte(r-'0') * 25, true
	}
	return 0, false
}

// Costs schedules building the cost grid. The returned grid may still have
// its load jobs pending.
func (s *Scenario) Costs(logger *slog.Logger) *grid.Grid[byte] {
	costs := grid.New[byte](s.Width(), s.Height(), grid.WithLogger(logger))
	rows, width := s.rows, s.Width()
	costs.Schedule("load_map", func(values []byte) {
		for y, row := range rows {
			for x := 0; x < width; x++ {
				values[geom.ToIndex(x, y, width)], _ = cellCost(rune(row[x]))
			}
		}
	})
	if s.Border {
		costs.FillBorder(gridastar.Impassable)
	}
	return costs
}

// Jobs returns the queries as planner jobs, or the main request when the
// scenario lists no queries.
func (s *Scenario) Jobs() []gridastar.Job {
	if len(s.Queries) == 0 {
		return []gridastar.Job{{ID: "main", Start: s.Start.coord(), Destination: s.Destination.coord()}}
	}
	jobs := make([]gridastar.Job, len(s.Queries))
	for i, q := range s.Queries {
		jobs[i] = gridastar.Job{ID: q.ID, Start: q.Start.coord(), Destination: q.Destination.coord()}
	}
	return jobs
}
