package netlink

// FakeLink is a test double with scripted connect outcomes.
type FakeLink struct {
	// ConnectResults contains scripted outcomes, consumed one per Connect
	// call. When exhausted, further calls fail.
	ConnectResults []bool

	// ConnectCalls counts Connect invocations.
	ConnectCalls int

	// LastCreds records the credentials from the most recent Connect.
	LastCreds Credentials

	// IsUp is the current link state. A successful Connect sets it.
	IsUp bool

	// Addr is returned by LocalAddr while the link is up.
	Addr string
}

// NewFakeLink creates a FakeLink with the given scripted connect outcomes.
func NewFakeLink(results ...bool) *FakeLink {
	return &FakeLink{ConnectResults: results}
}

// Connect consumes the next scripted outcome.
func (f *FakeLink) Connect(creds Credentials) bool {
	f.LastCreds = creds
	i := f.ConnectCalls
	f.ConnectCalls++
	if i >= len(f.ConnectResults) {
		return false
	}
	if f.ConnectResults[i] {
		f.IsUp = true
	}
	return f.ConnectResults[i]
}

// Up reports the scripted link state.
func (f *FakeLink) Up() bool {
	return f.IsUp
}

// LocalAddr returns the configured address while up.
func (f *FakeLink) LocalAddr() string {
	if !f.IsUp {
		return ""
	}
	return f.Addr
}
