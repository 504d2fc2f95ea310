package game

import (
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/Demon-Corridor/internal/sim"
)

// buildDebugReport describes the current sim state plus recent events as
// plain text for pasting into a bug report.
func buildDebugReport(s *sim.Sim, events []sim.SimLogEntry) string {
	var b strings.Builder
	cfg := s.Config()
	w, h := s.Viewport()
	p := s.Player

	fmt.Fprintf(&b, "--- Demon Corridor debug report ---\n")
	fmt.Fprintf(&b, "tick=%d clock=%.3fs viewport=%dx%d columns=%d parallel=%v\n",
		s.TickCount(), s.Clock(), w, h, sim.ColumnCount(w), cfg.ParallelColumns)
	fmt.Fprintf(&b, "player pos=(%.3f,%.3f) angle=%.4f (%.1f°) hp=%.2f ammo=%d last_shot=%.3f\n",
		p.X, p.Y, p.Angle, math.Mod(p.Angle*180/math.Pi, 360), p.Health, p.Ammo, p.LastShot)

	centre := sim.CastRay(s.Grid, p.X, p.Y, p.Angle, cfg.RayStep, cfg.MaxDepth)
	if centre.Hit {
		fmt.Fprintf(&b, "centre ray: %s face at %.2f (%.2f,%.2f)\n", centre.Side, centre.Distance, centre.HitX, centre.HitY)
	} else {
		fmt.Fprintf(&b, "centre ray: open to %.1f\n", cfg.MaxDepth)
	}

	fmt.Fprintf(&b, "\nenemies (%d):\n", len(s.Enemies))
	for _, e := range s.Enemies {
		off, dist := sim.AngleOffset(p.X, p.Y, p.Angle, e.X, e.Y)
		los := sim.HasLineOfSight(s.Grid, p.X, p.Y, e.X, e.Y, cfg.LOSStep)
		fmt.Fprintf(&b, "  %-3s %-5s hp=%d pos=(%.2f,%.2f) dist=%.2f off=%+.3f los=%v\n",
			e.Label(), e.Kind, e.HP, e.X, e.Y, dist, off, los)
	}

	b.WriteString("\nrecent events:\n")
	if len(events) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, e := range events {
		b.WriteString("  ")
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// copyDebugReport puts the report on the system clipboard.
func (g *Game) copyDebugReport() {
	report := buildDebugReport(g.sim, g.feed.Recent())
	if err := clipboard.WriteAll(report); err != nil {
		log.Printf("copy debug report: %v", err)
		g.flash("clipboard unavailable")
		return
	}
	g.flash("debug report copied")
}
