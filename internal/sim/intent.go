package sim

// Intent is one tick's worth of normalised player input.
type Intent struct {
	MoveForward bool
	MoveBack    bool
	StrafeLeft  bool
	StrafeRight bool
	TurnLeft    bool
	TurnRight   bool
	Fire        bool
	LookDelta   float64 // radians accumulated from pointer/drag since the last tick
}

// InputAccumulator collects input between ticks. Held flags persist until
// cleared by the input source; look deltas and fire clicks are consumed by
// Snapshot.
type InputAccumulator struct {
	held      Intent
	lookDelta float64
	click     bool
}

// SetHeld replaces the held directional/fire flags.
func (a *InputAccumulator) SetHeld(in Intent) {
	in.LookDelta = 0
	a.held = in
}

// AddLook accumulates a look rotation in radians.
func (a *InputAccumulator) AddLook(rad float64) {
	a.lookDelta += rad
}

// Click requests a single shot on the next tick regardless of held state.
func (a *InputAccumulator) Click() {
	a.click = true
}

// Snapshot returns the intent for the next tick and resets one-shot input.
func (a *InputAccumulator) Snapshot() Intent {
	in := a.held
	in.LookDelta = a.lookDelta
	in.Fire = in.Fire || a.click
	a.lookDelta = 0
	a.click = false
	return in
}
