package sim

import (
	"math"
	"testing"
)

// pillarRows is an open room with one wall cell at (3,2).
var pillarRows = []string{
	"1111111",
	"1P....1",
	"1..1..1",
	"1.....1",
	"1111111",
}

func TestLOS_ClearLine(t *testing.T) {
	gm := mustGrid(t, pillarRows...)
	if !HasLineOfSight(gm, 1.5, 1.5, 5.5, 1.5, 0.05) {
		t.Fatal("expected clear LOS above the pillar")
	}
}

func TestLOS_BlockedByWallCell(t *testing.T) {
	gm := mustGrid(t, pillarRows...)
	if HasLineOfSight(gm, 1.5, 2.5, 5.5, 2.5, 0.05) {
		t.Fatal("expected LOS blocked by the pillar")
	}
}

func TestLOS_DiagonalBlocked(t *testing.T) {
	gm := mustGrid(t, pillarRows...)
	if HasLineOfSight(gm, 2.5, 1.5, 4.5, 3.5, 0.05) {
		t.Fatal("diagonal through the pillar should be blocked")
	}
}

func TestLOS_DiagonalClear(t *testing.T) {
	gm := mustGrid(t, pillarRows...)
	if !HasLineOfSight(gm, 1.5, 3.5, 2.5, 1.5, 0.05) {
		t.Fatal("diagonal away from the pillar should be clear")
	}
}

func TestLOS_ZeroLength(t *testing.T) {
	gm := mustGrid(t, pillarRows...)
	// Same start and end: nothing is sampled, so sight is trivially clear.
	if !HasLineOfSight(gm, 2.5, 2.5, 2.5, 2.5, 0.05) {
		t.Fatal("zero-length segment should have clear LOS")
	}
}

func TestLOS_EndpointInWall(t *testing.T) {
	gm := mustGrid(t, pillarRows...)
	if HasLineOfSight(gm, 1.5, 2.5, 3.5, 2.5, 0.05) {
		t.Fatal("the end point itself is sampled and lies in the pillar")
	}
}

func TestNormalizeAngle_Range(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{100*math.Pi + 0.1, 0.1},
		{-100*math.Pi - 0.1, -0.1},
	}
	for _, c := range cases {
		got := normalizeAngle(c.in)
		if math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("normalizeAngle(%v) = %v, want %v", c.in, got, c.want)
		}
		if got <= -math.Pi || got > math.Pi {
			t.Fatalf("normalizeAngle(%v) = %v outside (-pi, pi]", c.in, got)
		}
	}
}

func TestAngleOffset(t *testing.T) {
	off, dist := AngleOffset(0, 0, 0, 0, 2)
	if math.Abs(off-math.Pi/2) > 1e-12 || dist != 2 {
		t.Fatalf("got off=%v dist=%v, want pi/2 and 2", off, dist)
	}
	// Heading wound several turns still yields a small offset.
	off, _ = AngleOffset(0, 0, 4*math.Pi+0.2, 1, 0)
	if math.Abs(off+0.2) > 1e-9 {
		t.Fatalf("got off=%v, want -0.2", off)
	}
}

func TestInCone(t *testing.T) {
	if !InCone(0, 0, 0, 5, 0.5, 0.2, 20) {
		t.Fatal("target 5.7° off axis should be inside a 0.2 rad half-cone")
	}
	if InCone(0, 0, 0, 5, 2, 0.2, 20) {
		t.Fatal("target 21.8° off axis should be outside a 0.2 rad half-cone")
	}
	if InCone(0, 0, 0, 25, 0, 0.2, 20) {
		t.Fatal("target beyond range should be outside the cone")
	}
	if InCone(0, 0, 0, -5, 0, 0.2, 20) {
		t.Fatal("target behind should be outside the cone")
	}
}
