package session

// Status tracks where the suggestion cycle currently is
type Status int

const (
	// StatusIdle means no request is pending and the buffer is empty
	StatusIdle Status = iota
	// StatusLoading means a request has been dispatched and not yet resolved
	StatusLoading
	// StatusReady means the current candidate list reflects the latest request
	StatusReady
	// StatusError flags a transient fetch failure; the session settles back
	// to Ready so typing is never blocked
	StatusError
)

// String returns the status label shown at the rendering boundary
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	}
	return "unknown"
}
