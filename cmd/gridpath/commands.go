package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/geom"
)

// findFlags control how find reports a search.
type findFlags struct {
	explored bool
	trace    bool
}

func (f *findFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.explored, "explored", false, "mark cells the search expanded")
	cmd.Flags().BoolVar(&f.trace, "trace", false, "print one line per search step")
}

func newFindCmd(a *app) *cobra.Command {
	var flags findFlags
	cmd := &cobra.Command{
		Use:   "find <scenario.yaml>",
		Short: "Find a path from the scenario start to its destination",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.find(cmd.Context(), cmd.OutOrStdout(), args[0], flags)
		},
	}
	flags.register(cmd)
	return cmd
}

func newBatchCmd(a *app) *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "batch <scenario.yaml>",
		Short: "Run every scenario query concurrently and print a summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.batch(cmd.Context(), cmd.OutOrStdout(), args[0], asYAML)
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print results as YAML")
	return cmd
}

func newLineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "line <x0> <y0> <x1> <y1>",
		Short: "Print the cells of a Bresenham line, endpoints included",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			var v [4]int
			for i, arg := range args {
				n, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("argument %d: %w", i+1, err)
				}
				v[i] = n
			}
			out := cmd.OutOrStdout()
			for c := range geom.Line(geom.Coord{X: v[0], Y: v[1]}, geom.Coord{X: v[2], Y: v[3]}) {
				fmt.Fprintln(out, c)
			}
			return nil
		},
	}
}

func (a *app) searchOptions() []gridastar.Option {
	return append(a.cfg.SearchOptions(), gridastar.WithLogger(a.logger))
}

func (a *app) find(ctx context.Context, out io.Writer, path string, flags findFlags) error {
	scenario, err := loadScenario(path)
	if err != nil {
		return err
	}
	costs := scenario.Costs(a.logger)
	if err := costs.Wait(ctx); err != nil {
		return err
	}
	defer costs.Dispose()

	start, destination := scenario.Start.coord(), scenario.Destination.coord()
	stepper, err := gridastar.NewStepper(costs.Values(), costs.Width(), start, destination, a.searchOptions()...)
	if err != nil {
		return err
	}
	defer stepper.Close()

	var snapshot gridastar.StepSnapshot
	if flags.trace {
		for !snapshot.Done {
			if err := ctx.Err(); err != nil {
				return err
			}
			snapshot = stepper.Step()
			fmt.Fprintf(out, "step %-5d %-16s current %-9s frontier %d\n",
				snapshot.StepIndex, snapshot.State, snapshot.Current, snapshot.FrontierLen)
		}
	} else if snapshot, err = stepper.Run(ctx); err != nil {
		return err
	}

	p := newPalette(out, colorEnabled(a.cfg.Color, out))
	ov := overlay{start: start, destination: destination, path: stepper.Path()}
	if flags.explored {
		ov.explored = stepper.Expanded
	}
	fmt.Fprint(out, renderMap(p, costs.Values(), costs.Width(), ov))
	if snapshot.Found {
		fmt.Fprintf(out, "%s %d cells, cost %.3f, %d steps\n",
			p.paint(p.header, "path:"), len(stepper.Path()), stepper.Cost(), snapshot.StepIndex)
	} else {
		fmt.Fprintf(out, "%s after %d steps\n", p.paint(p.header, "no path"), snapshot.StepIndex)
	}
	return nil
}

// batchRow is one line of batch output.
type batchRow struct {
	ID          string  `yaml:"id"`
	Start       string  `yaml:"start"`
	Destination string  `yaml:"destination"`
	Found       bool    `yaml:"found"`
	Length      int     `yaml:"length"`
	Cost        float64 `yaml:"cost"`
	Steps       int     `yaml:"steps"`
	Shared      bool    `yaml:"shared,omitempty"`
	Error       string  `yaml:"error,omitempty"`
}

func (a *app) batch(ctx context.Context, out io.Writer, path string, asYAML bool) error {
	scenario, err := loadScenario(path)
	if err != nil {
		return err
	}
	costs := scenario.Costs(a.logger)
	if err := costs.Wait(ctx); err != nil {
		return err
	}
	defer costs.Dispose()

	planner, err := gridastar.NewPlanner(costs.Values(), costs.Width(), a.searchOptions()...)
	if err != nil {
		return err
	}
	results, err := planner.Plan(ctx, scenario.Jobs())
	if err != nil {
		return err
	}

	rows := make([]batchRow, len(results))
	for i, r := range results {
		rows[i] = batchRow{
			ID:          r.Job.ID,
			Start:       r.Job.Start.String(),
			Destination: r.Job.Destination.String(),
			Found:       r.Result.Found,
			Length:      len(r.Result.Path),
			Cost:        r.Result.Cost,
			Steps:       r.Result.ExpandedNodes,
			Shared:      r.Shared,
		}
		if r.Err != nil {
			rows[i].Error = r.Err.Error()
		}
	}

	if asYAML {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return err
		}
		return enc.Close()
	}

	p := newPalette(out, colorEnabled(a.cfg.Color, out))
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "START", "DEST", "FOUND", "LEN", "COST", "STEPS", "ERROR").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow && p.color {
				return p.header
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for _, r := range rows {
		t.Row(r.ID, r.Start, r.Destination, strconv.FormatBool(r.Found),
			strconv.Itoa(r.Length), strconv.FormatFloat(r.Cost, 'f', 3, 64),
			strconv.Itoa(r.Steps), r.Error)
	}
	fmt.Fprintln(out, t.String())
	return nil
}
