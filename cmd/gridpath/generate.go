package main

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pdrpinto/gridastar/geom"
	"github.com/pdrpinto/gridastar/grid"
)

// genOptions shape a generated scenario. Walls grow along random walks, which
// gives clustered obstacles instead of noise.
type genOptions struct {
	width    int
	height   int
	clusters int
	walk     int
	density  float64
	border   bool
	seed     uint64
}

var orthogonal = [4]geom.Coord{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}}

func newGenCmd() *cobra.Command {
	o := genOptions{}
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a scenario with clustered random walls",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				o.seed = uint64(time.Now().UnixNano())
			}
			s, err := generateScenario(o)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(s); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	flags := cmd.Flags()
	flags.IntVar(&o.width, "width", 40, "map width")
	flags.IntVar(&o.height, "height", 24, "map height")
	flags.IntVar(&o.clusters, "clusters", 8, "number of wall clusters")
	flags.IntVar(&o.walk, "walk", 200, "random walk length per cluster")
	flags.Float64Var(&o.density, "density", 0.25, "chance that a walk step places a wall")
	flags.BoolVar(&o.border, "border", false, "surround the map with a wall")
	flags.Uint64Var(&o.seed, "seed", 0, "random seed (default: time based)")
	return cmd
}

func generateScenario(o genOptions) (*Scenario, error) {
	switch {
	case o.width < 1 || o.height < 1 || o.width*o.height < 2:
		return nil, fmt.Errorf("map %dx%d needs at least two cells", o.width, o.height)
	case o.clusters < 0 || o.walk < 0:
		return nil, fmt.Errorf("clusters and walk must be >= 0")
	case o.density < 0 || o.density > 1:
		return nil, fmt.Errorf("density %v must be within [0,1]", o.density)
	}

	rng := rand.New(rand.NewPCG(o.seed, o.seed^0x9e3779b97f4a7c15))
	randomCell := func() geom.Coord {
		return geom.Coord{X: rng.IntN(o.width), Y: rng.IntN(o.height)}
	}
	start, destination := randomCell(), randomCell()
	for start == destination {
		destination = randomCell()
	}

	walls := grid.New[bool](o.width, o.height)
	walls.Schedule("random_walls", func(values []bool) {
		for c := 0; c < o.clusters; c++ {
			p := randomCell()
			for s := 0; s < o.walk; s++ {
				if rng.Float64() < o.density && p != start && p != destination {
					values[p.Index(o.width)] = true
				}
				if next := p.Add(orthogonal[rng.IntN(len(orthogonal))]); next.In(o.width, o.height) {
					p = next
				}
			}
		}
	})
	if o.border {
		walls.FillBorder(true)
	}

	cells := walls.Values()
	// The border may have covered the endpoints.
	cells[start.Index(o.width)] = false
	cells[destination.Index(o.width)] = false

	rows := make([]string, o.height)
	var b strings.Builder
	for y := range rows {
		b.Reset()
		for x := 0; x < o.width; x++ {
			if cells[geom.ToIndex(x, y, o.width)] {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		rows[y] = b.String()
	}
	walls.Dispose()

	return &Scenario{
		Map:         strings.Join(rows, "\n") + "\n",
		Start:       point{start.X, start.Y},
		Destination: point{destination.X, destination.Y},
		rows:        rows,
	}, nil
}
