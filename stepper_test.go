package gridastar

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/gridastar/geom"
)

func TestStepperWalksDiagonal(t *testing.T) {
	s, err := NewStepper(openGrid(5, 5), 5, c(0, 0), c(4, 4), quiet())
	require.NoError(t, err)
	defer s.Close()

	first := s.Step()
	assert.Equal(t, c(0, 0), first.Current)
	assert.Equal(t, StateSearching, first.State)
	assert.False(t, first.Done)
	assert.Equal(t, 1, first.StepIndex)
	assert.Equal(t, 3, first.FrontierLen)

	assert.True(t, s.Expanded(c(0, 0)))
	assert.True(t, s.Visited(c(1, 1)))
	assert.False(t, s.Visited(c(2, 2)))
	prev, ok := s.Predecessor(c(1, 1))
	assert.True(t, ok)
	assert.Equal(t, c(0, 0), prev)
	g, f := s.Score(c(1, 1))
	assert.InDelta(t, math.Sqrt2, g, 1e-12)
	assert.InDelta(t, 4*math.Sqrt2, f, 1e-12)
	_, ok = s.Predecessor(c(4, 0))
	assert.False(t, ok)

	final, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, final.Done)
	assert.True(t, final.Found)
	assert.Equal(t, StatePathFound, final.State)
	assert.Equal(t, c(4, 4), final.Current)
	assert.Equal(t, 4, final.StepIndex)
	assert.Len(t, s.Path(), 4)

	// Done steppers keep reporting the final state.
	assert.Equal(t, final, s.Step())
}

func TestStepperBudgetExhausted(t *testing.T) {
	s, err := NewStepper(openGrid(30, 30), 30, c(0, 0), c(29, 29), WithStepBudget(3), quiet())
	require.NoError(t, err)
	defer s.Close()

	snapshot, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateBudgetExhausted, snapshot.State)
	assert.True(t, snapshot.Done)
	assert.False(t, snapshot.Found)
	assert.Equal(t, 3, snapshot.StepIndex)
	assert.Nil(t, s.Path())
	assert.Zero(t, s.Cost())
}

func TestStepperImpassableEndpointIsDoneImmediately(t *testing.T) {
	moveCost := openGrid(3, 3)
	moveCost[geom.ToIndex(2, 2, 3)] = Impassable
	s, err := NewStepper(moveCost, 3, c(0, 0), c(2, 2), quiet())
	require.NoError(t, err)

	snapshot := s.Step()
	assert.Equal(t, StateNoPath, snapshot.State)
	assert.Zero(t, snapshot.StepIndex)
	assert.False(t, s.Visited(c(0, 0)))
}

func TestStepperPathSurvivesClose(t *testing.T) {
	s, err := NewStepper(openGrid(4, 1), 4, c(0, 0), c(3, 0), quiet())
	require.NoError(t, err)
	_, err = s.Run(context.Background())
	require.NoError(t, err)
	s.Close()
	s.Close()

	assert.Equal(t, []geom.Coord{c(1, 0), c(2, 0), c(3, 0)}, s.Path())
	assert.InDelta(t, 3.0, s.Cost(), 1e-12)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "searching", StateSearching.String())
	assert.Equal(t, "path_found", StatePathFound.String())
	assert.Equal(t, "no_path", StateNoPath.String())
	assert.Equal(t, "budget_exhausted", StateBudgetExhausted.String())
	assert.Equal(t, "unknown", State(42).String())
}

func TestHeuristics(t *testing.T) {
	assert.InDelta(t, 5.0, Euclidean(c(0, 0), c(3, 4)), 1e-12)
	assert.InDelta(t, 5.0, EuclideanMaxLength(12, 4), 1e-12)
	normalized := EuclideanNormalized(12, 4)
	assert.InDelta(t, 1.0, normalized(c(0, 0), c(3, 4)), 1e-12)
	assert.InDelta(t, 0.2, normalized(c(0, 0), c(1, 0)), 1e-12)
}
