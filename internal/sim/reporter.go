package sim

import (
	"fmt"
	"strings"
)

// RunReport summarises one headless run.
type RunReport struct {
	Ticks       int
	SimSeconds  float64
	ShotsFired  int
	Hits        int
	Kills       int
	Misses      int
	DamageTaken float64
	FirstKill   int // tick of the first kill, -1 if none
	DeathTick   int // tick the player died, -1 if alive
	ClearTick   int // tick the last enemy fell, -1 if any remain
	HUD         HUDStats
	Remaining   []string // labels of enemies still active
}

// Accuracy is the fraction of fired shots that damaged an enemy.
func (r RunReport) Accuracy() float64 {
	if r.ShotsFired == 0 {
		return 0
	}
	return float64(r.Hits+r.Kills) / float64(r.ShotsFired)
}

// Survived reports whether the player was alive at the end of the run.
func (r RunReport) Survived() bool {
	return r.DeathTick < 0
}

// BuildRunReport tallies the harness log and final state.
func BuildRunReport(ts *TestSim) RunReport {
	sl := ts.SimLog
	r := RunReport{
		Ticks:       ts.TickCount(),
		SimSeconds:  ts.Clock(),
		Hits:        sl.CountCategory("combat", "hit"),
		Kills:       sl.CountCategory("combat", "kill"),
		Misses:      sl.CountCategory("combat", "miss"),
		DamageTaken: sl.SumCategory("melee", "damage"),
		FirstKill:   -1,
		DeathTick:   -1,
		ClearTick:   -1,
		HUD:         ts.hud(),
	}
	r.ShotsFired = r.Hits + r.Kills + r.Misses
	if e, ok := sl.FirstOf("combat", "kill"); ok {
		r.FirstKill = e.Tick
	}
	if e, ok := sl.FirstOf("player", "died"); ok {
		r.DeathTick = e.Tick
	}
	if e, ok := sl.FirstOf("level", "cleared"); ok {
		r.ClearTick = e.Tick
	}
	for _, e := range ts.Enemies {
		r.Remaining = append(r.Remaining, e.Label())
	}
	return r
}

// Format renders the report as an indented block.
func (r RunReport) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "  ticks=%d sim=%.2fs\n", r.Ticks, r.SimSeconds)
	fmt.Fprintf(&sb, "  shots=%d hits=%d kills=%d misses=%d acc=%.0f%%\n",
		r.ShotsFired, r.Hits, r.Kills, r.Misses, r.Accuracy()*100)
	fmt.Fprintf(&sb, "  damage_taken=%.1f first_kill=%s death=%s clear=%s\n",
		r.DamageTaken, tickLabel(r.FirstKill), tickLabel(r.DeathTick), tickLabel(r.ClearTick))
	fmt.Fprintf(&sb, "  hud: %s\n", r.HUD)
	if len(r.Remaining) > 0 {
		fmt.Fprintf(&sb, "  remaining: %s\n", strings.Join(r.Remaining, ", "))
	}
	return sb.String()
}

func tickLabel(t int) string {
	if t < 0 {
		return "-"
	}
	return fmt.Sprintf("T%d", t)
}
