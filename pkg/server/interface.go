/*
Package server implements msgpack IPC for hosting the input controller.

The bridge lets an editor plugin embed the suggestion session without a
terminal: the host streams input snapshots over stdin and renders the state
frames it gets back on stdout. Messages use binary msgpack encoding.

# IPC

Requests carry an ID, an op, and the op's payload field:

	{"id": "req_001", "op": "input", "t": "ខ្ញុំ ស្រ"}
	{"id": "req_002", "op": "choose", "i": 0}
	{"id": "req_003", "op": "clear"}
	{"id": "req_004", "op": "health"}

The bridge answers with state frames. Because the session debounces and
resolves asynchronously, one input request usually yields two frames
(loading, then ready) and a burst of inputs within the debounce window
yields frames only for the last one:

	{"id": "req_001", "st": "loading", "c": [], "x": "ខ្ញុំ ស្រ", "t": 2}
	{"id": "req_001", "st": "ready", "c": ["ស្រលាញ់", "ស្រុក"], "x": "ខ្ញុំ ស្រ", "t": 140}

Frames always carry the full candidate list and buffer text, so a host can
treat every frame as a complete redraw. Stale model responses never produce
frames; the session discards them before they reach the bridge.

Malformed frames get an ErrorResponse and the stream keeps going.
*/
package server

// Request is an incoming host request
type Request struct {
	ID    string `msgpack:"id"`
	Op    string `msgpack:"op"` // "input", "choose", "clear", "health"
	Text  string `msgpack:"t,omitempty"`
	Index int    `msgpack:"i,omitempty"`
}

// StateResponse is a full state frame for the host to render
type StateResponse struct {
	ID         string   `msgpack:"id"`
	Status     string   `msgpack:"st"`
	Candidates []string `msgpack:"c"`
	Text       string   `msgpack:"x"`
	TimeTaken  int64    `msgpack:"t"`
}

// HealthResponse answers a health probe
type HealthResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for bad requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
