package led

// FakeIndicator records LED states for test assertions.
type FakeIndicator struct {
	// States contains every value passed to SetLinkUp, in order.
	States []bool

	// SetError, if set, will be returned by SetLinkUp.
	SetError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeIndicator creates a FakeIndicator for testing.
func NewFakeIndicator() *FakeIndicator {
	return &FakeIndicator{}
}

// SetLinkUp records the state.
func (f *FakeIndicator) SetLinkUp(up bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.States = append(f.States, up)
	return nil
}

// Close marks the indicator as closed.
func (f *FakeIndicator) Close() error {
	f.Closed = true
	return nil
}

// Current returns the most recent state, or false if none was set.
func (f *FakeIndicator) Current() bool {
	if len(f.States) == 0 {
		return false
	}
	return f.States[len(f.States)-1]
}
