package sim

import (
	"fmt"
	"math"
	"strings"
)

// SimLogEntry is one recorded simulation event.
type SimLogEntry struct {
	Tick     int
	Actor    string  // "you", an enemy label such as "E3", or "--" for global events
	Category string  // combat, melee, player, level
	Key      string  // event within the category
	Value    string
	NumVal   float64 // optional numeric value (distance, damage)
}

// String renders a fixed-width line:
//
//	[T=042] E3   combat    kill             grunt down
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Tick, e.Actor, e.Category, e.Key, e.Value)
}

// SimLog is an append-only record of every event a headless run produced.
// The on-screen feed keeps its own bounded copy.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog returns an empty log. Per-tick pose events are kept only when
// verbose is set.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

func (sl *SimLog) Verbose() bool { return sl.verbose }

// Append stores the events of one tick.
func (sl *SimLog) Append(entries ...SimLogEntry) {
	sl.entries = append(sl.entries, entries...)
}

func (sl *SimLog) Add(tick int, actor, category, key, value string, numVal float64) {
	sl.Append(SimLogEntry{tick, actor, category, key, value, numVal})
}

// AddVerbose is Add on a verbose log and a no-op otherwise.
func (sl *SimLog) AddVerbose(tick int, actor, category, key, value string, numVal float64) {
	if sl.verbose {
		sl.Add(tick, actor, category, key, value, numVal)
	}
}

func (sl *SimLog) Entries() []SimLogEntry { return sl.entries }

// is builds a predicate on category and key; an empty string is a wildcard.
func is(category, key string) func(SimLogEntry) bool {
	return func(e SimLogEntry) bool {
		return (category == "" || e.Category == category) && (key == "" || e.Key == key)
	}
}

func (sl *SimLog) where(keep func(SimLogEntry) bool) []SimLogEntry {
	var picked []SimLogEntry
	for _, e := range sl.entries {
		if keep(e) {
			picked = append(picked, e)
		}
	}
	return picked
}

// Filter selects by category and key. Either may be empty to match anything.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	return sl.where(is(category, key))
}

func (sl *SimLog) FilterActor(label string) []SimLogEntry {
	return sl.where(func(e SimLogEntry) bool { return e.Actor == label })
}

// FilterTickRange selects ticks in the closed range [from, to].
func (sl *SimLog) FilterTickRange(from, to int) []SimLogEntry {
	return sl.where(func(e SimLogEntry) bool { return e.Tick >= from && e.Tick <= to })
}

func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// SumCategory totals NumVal, e.g. melee damage taken.
func (sl *SimLog) SumCategory(category, key string) float64 {
	var sum float64
	for _, e := range sl.Filter(category, key) {
		sum += e.NumVal
	}
	return sum
}

func (sl *SimLog) FirstOf(category, key string) (SimLogEntry, bool) {
	match := is(category, key)
	for _, e := range sl.entries {
		if match(e) {
			return e, true
		}
	}
	return SimLogEntry{}, false
}

func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	match := is(category, key)
	for i := len(sl.entries) - 1; i >= 0; i-- {
		if match(sl.entries[i]) {
			return sl.entries[i], true
		}
	}
	return SimLogEntry{}, false
}

// HasEntry also requires Value to contain substr when substr is non-empty.
func (sl *SimLog) HasEntry(category, key, substr string) bool {
	match := is(category, key)
	for _, e := range sl.entries {
		if match(e) && strings.Contains(e.Value, substr) {
			return true
		}
	}
	return false
}

func formatLines(entries []SimLogEntry) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintln(&b, e.String())
	}
	return b.String()
}

// Format renders every entry, one per line.
func (sl *SimLog) Format() string { return formatLines(sl.entries) }

func (sl *SimLog) FormatRange(from, to int) string {
	return formatLines(sl.FilterTickRange(from, to))
}

// Summary describes the player, shot tallies and surviving enemies of s.
func (sl *SimLog) Summary(s *Sim) string {
	var sb strings.Builder
	p := s.Player
	fmt.Fprintf(&sb, "--- Summary at T=%03d (%.2fs) ---\n", s.TickCount(), s.Clock())
	fmt.Fprintf(&sb, "Player: pos=(%.2f,%.2f) heading=%.1f° hp=%.0f ammo=%d\n",
		p.X, p.Y, normalizeAngle(p.Angle)*180/math.Pi, p.Health, p.Ammo)
	fmt.Fprintf(&sb, "Shots: fired=%d hits=%d kills=%d misses=%d\n",
		sl.CountCategory("combat", "miss")+sl.CountCategory("combat", "hit")+sl.CountCategory("combat", "kill"),
		sl.CountCategory("combat", "hit"), sl.CountCategory("combat", "kill"), sl.CountCategory("combat", "miss"))
	fmt.Fprintf(&sb, "Melee damage taken: %.1f\n", sl.SumCategory("melee", "damage"))

	if len(s.Enemies) == 0 {
		sb.WriteString("Enemies: none\n")
		return sb.String()
	}
	labels := make([]string, len(s.Enemies))
	for i, e := range s.Enemies {
		labels[i] = fmt.Sprintf("%s(%s hp=%d @%.1f,%.1f)", e.Label(), e.Kind, e.HP, e.X, e.Y)
	}
	fmt.Fprintf(&sb, "Enemies: %s\n", strings.Join(labels, ", "))
	return sb.String()
}
