package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Demon-Corridor/internal/sim"
)

const (
	feedPanelWidth = 300
	feedMaxEntries = 40
	feedVisible    = 8
	feedLineHeight = 14
)

// EventFeed is a ring buffer of recent sim events rendered in a corner panel.
type EventFeed struct {
	entries []sim.SimLogEntry
	head    int
	count   int
}

// NewEventFeed creates a feed with a fixed capacity.
func NewEventFeed() *EventFeed {
	return &EventFeed{
		entries: make([]sim.SimLogEntry, feedMaxEntries),
	}
}

// Add appends an entry, overwriting the oldest once full. Per-tick melee
// damage is folded into the previous line when the same actor repeats it.
func (ef *EventFeed) Add(e sim.SimLogEntry) {
	if ef.count > 0 && e.Category == "melee" {
		prev := &ef.entries[(ef.head-1+feedMaxEntries)%feedMaxEntries]
		if prev.Category == e.Category && prev.Key == e.Key && prev.Actor == e.Actor {
			prev.Tick = e.Tick
			prev.NumVal += e.NumVal
			prev.Value = fmt.Sprintf("-%.1f hp", prev.NumVal)
			return
		}
	}
	ef.entries[ef.head] = e
	ef.head = (ef.head + 1) % feedMaxEntries
	if ef.count < feedMaxEntries {
		ef.count++
	}
}

// Recent returns entries in chronological order (oldest first).
func (ef *EventFeed) Recent() []sim.SimLogEntry {
	result := make([]sim.SimLogEntry, ef.count)
	for i := 0; i < ef.count; i++ {
		idx := (ef.head - ef.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = ef.entries[idx]
	}
	return result
}

func categoryColor(category string) color.RGBA {
	switch category {
	case "combat":
		return color.RGBA{R: 255, G: 170, B: 51, A: 255}
	case "melee":
		return color.RGBA{R: 255, G: 80, B: 80, A: 255}
	case "level":
		return color.RGBA{R: 158, G: 227, B: 125, A: 255}
	default:
		return color.RGBA{R: 180, G: 180, B: 190, A: 255}
	}
}

// Draw renders the newest entries in a panel whose top-left is (x,y).
func (ef *EventFeed) Draw(screen *ebiten.Image, x, y int) {
	entries := ef.Recent()
	if len(entries) > feedVisible {
		entries = entries[len(entries)-feedVisible:]
	}
	panelH := 18 + feedVisible*feedLineHeight
	vector.FillRect(screen, float32(x), float32(y), feedPanelWidth, float32(panelH), color.RGBA{R: 8, G: 9, B: 12, A: 200}, false)
	vector.StrokeLine(screen, float32(x), float32(y+16), float32(x+feedPanelWidth), float32(y+16), 1, color.RGBA{R: 58, G: 63, B: 71, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENTS", x+6, y+1)

	ly := y + 18
	for _, e := range entries {
		vector.FillRect(screen, float32(x+5), float32(ly+4), 3, 6, categoryColor(e.Category), false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%5d %-3s %s", e.Tick, e.Actor, e.Value), x+12, ly)
		ly += feedLineHeight
	}
}
