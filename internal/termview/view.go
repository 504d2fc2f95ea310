package termview

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Demon-Corridor/internal/sim"
)

// holdWindow is how long a key counts as held after its last press or
// auto-repeat. Terminals report no key releases.
const holdWindow = 150 * time.Millisecond

const frameInterval = 16 * time.Millisecond

// control is a held action a key maps to.
type control int

const (
	ctrlForward control = iota
	ctrlBack
	ctrlStrafeL
	ctrlStrafeR
	ctrlTurnL
	ctrlTurnR
	ctrlFire
	ctrlCount
)

// keyLatch turns discrete key events into held state.
type keyLatch struct {
	until [ctrlCount]time.Time
}

func (l *keyLatch) press(c control, now time.Time) {
	l.until[c] = now.Add(holdWindow)
}

func (l *keyLatch) held(c control, now time.Time) bool {
	return now.Before(l.until[c])
}

func (l *keyLatch) intent(now time.Time) sim.Intent {
	return sim.Intent{
		MoveForward: l.held(ctrlForward, now),
		MoveBack:    l.held(ctrlBack, now),
		StrafeLeft:  l.held(ctrlStrafeL, now),
		StrafeRight: l.held(ctrlStrafeR, now),
		TurnLeft:    l.held(ctrlTurnL, now),
		TurnRight:   l.held(ctrlTurnR, now),
		Fire:        l.held(ctrlFire, now),
	}
}

// controlFor maps a key event to a control.
func controlFor(ev *tcell.EventKey) (control, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return ctrlForward, true
	case tcell.KeyDown:
		return ctrlBack, true
	case tcell.KeyLeft:
		return ctrlTurnL, true
	case tcell.KeyRight:
		return ctrlTurnR, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return ctrlForward, true
		case 's', 'S':
			return ctrlBack, true
		case 'a', 'A':
			return ctrlTurnL, true
		case 'd', 'D':
			return ctrlTurnR, true
		case 'q', 'Q':
			return ctrlStrafeL, true
		case 'e', 'E':
			return ctrlStrafeR, true
		case ' ':
			return ctrlFire, true
		}
	}
	return 0, false
}

// View runs a sim in a tcell screen. One row at the bottom is kept for the
// status line.
type View struct {
	screen tcell.Screen
	sim    *sim.Sim
	latch  keyLatch
	last   time.Time
	cols   int
	rows   int

	showMap bool
}

// New wraps an initialised screen.
func New(screen tcell.Screen, s *sim.Sim) *View {
	v := &View{screen: screen, sim: s, showMap: true}
	v.resize()
	return v
}

func (v *View) resize() {
	w, h := v.screen.Size()
	v.cols = max(1, w)
	v.rows = max(1, h-1)
	v.sim.SetViewport(ViewportFor(v.cols, v.rows))
}

// handleEvent applies one terminal event. It returns false when the user
// asked to quit.
func (v *View) handleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyTab {
			v.showMap = !v.showMap
			return true
		}
		if c, ok := controlFor(ev); ok {
			v.latch.press(c, now)
		}
	case *tcell.EventResize:
		v.resize()
		v.screen.Sync()
	}
	return true
}

// step advances the sim to now and draws the resulting frame.
func (v *View) step(now time.Time) sim.Frame {
	dt := 0.0
	if !v.last.IsZero() {
		dt = now.Sub(v.last).Seconds()
	}
	v.last = now
	f := v.sim.Tick(dt, v.latch.intent(now))
	v.draw(f)
	return f
}

func (v *View) draw(f sim.Frame) {
	cells := Rasterize(f, v.sim.Config().MaxDepth, v.cols, v.rows)
	for y, row := range cells {
		for x, c := range row {
			v.screen.SetContent(x, y, c.Ch, nil, c.Style)
		}
	}
	if v.showMap {
		mapStyle := tcell.StyleDefault.Foreground(tcell.NewRGBColor(0x9e, 0xe3, 0x7d)).Background(tcell.ColorBlack)
		for y, row := range minimapRunes(f.Minimap) {
			if y >= v.rows {
				break
			}
			for x, ch := range row {
				if x >= v.cols {
					break
				}
				v.screen.SetContent(x, y, ch, nil, mapStyle)
			}
		}
	}

	status := fmt.Sprintf(" %s   [wasd/arrows move  q/e strafe  space fire  tab map  esc quit]", f.HUD)
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	if f.HUD.Dead {
		style = style.Foreground(tcell.ColorRed)
	}
	x := 0
	for _, r := range status {
		if x >= v.cols {
			break
		}
		v.screen.SetContent(x, v.rows, r, nil, style)
		x++
	}
	for ; x < v.cols; x++ {
		v.screen.SetContent(x, v.rows, ' ', nil, style)
	}
	v.screen.Show()
}

// Run polls events on a reader goroutine and ticks the sim at ~60 fps
// until the user quits. The caller owns Init/Fini of the screen.
func (v *View) Run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok || !v.handleEvent(ev, time.Now()) {
				return
			}
		case now := <-ticker.C:
			v.step(now)
		}
	}
}
