package server

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/khmertype/pkg/predict"
	"github.com/bastiangx/khmertype/pkg/session"
)

// Bridge wires a session to a msgpack request/response stream
type Bridge struct {
	sess *session.Session
	dec  *msgpack.Decoder
	log  *log.Logger

	wmu sync.Mutex
	enc *msgpack.Encoder

	rmu     sync.Mutex
	reqID   string
	reqTime time.Time
}

// NewBridge creates a bridge over the given stream, typically stdin/stdout
func NewBridge(sess *session.Session, r io.Reader, w io.Writer, logger *log.Logger) *Bridge {
	if logger == nil {
		logger = log.Default()
	}
	return &Bridge{
		sess: sess,
		dec:  msgpack.NewDecoder(r),
		enc:  msgpack.NewEncoder(w),
		log:  logger,
	}
}

// Start pumps requests until the host closes its end. Session events are
// forwarded as state frames tagged with the id of the request that caused
// them. The session is closed on exit.
func (b *Bridge) Start() error {
	b.log.Debug("Starting IPC bridge.")
	defer b.sess.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		b.pumpEvents()
	}()

	// initial frame so the host knows the bridge is up
	b.sendState(session.Event{Status: b.sess.Status(), Text: b.sess.Text()})

	for {
		var req Request
		if err := b.dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				b.sess.Close()
				<-done
				return nil
			}
			b.log.Errorf("Decoding request: %v", err)
			b.sess.Close()
			<-done
			return err
		}
		b.handleRequest(req)
	}
}

// handleRequest dispatches one host request
func (b *Bridge) handleRequest(req Request) {
	switch req.Op {
	case "input":
		b.beginRequest(req.ID)
		b.sess.SetText(req.Text)
	case "choose":
		b.beginRequest(req.ID)
		b.sess.Choose(req.Index)
	case "clear":
		b.beginRequest(req.ID)
		b.sess.Clear()
	case "health":
		b.send(HealthResponse{ID: req.ID, Status: "ok"})
	default:
		b.send(ErrorResponse{ID: req.ID, Error: fmt.Sprintf("Unknown op: %s", req.Op), Code: 400})
	}
}

// pumpEvents turns session events into state frames
func (b *Bridge) pumpEvents() {
	for ev := range b.sess.Events() {
		b.sendState(ev)
	}
}

func (b *Bridge) beginRequest(id string) {
	b.rmu.Lock()
	b.reqID = id
	b.reqTime = time.Now()
	b.rmu.Unlock()
}

func (b *Bridge) sendState(ev session.Event) {
	b.rmu.Lock()
	id := b.reqID
	var elapsed int64
	if !b.reqTime.IsZero() {
		elapsed = time.Since(b.reqTime).Milliseconds()
	}
	b.rmu.Unlock()

	candidates := predict.Words(ev.Candidates)
	if candidates == nil {
		candidates = []string{}
	}
	b.send(StateResponse{
		ID:         id,
		Status:     ev.Status.String(),
		Candidates: candidates,
		Text:       ev.Text,
		TimeTaken:  elapsed,
	})
}

func (b *Bridge) send(response interface{}) {
	b.wmu.Lock()
	defer b.wmu.Unlock()
	if err := b.enc.Encode(response); err != nil {
		b.log.Errorf("Encoding response: %v", err)
	}
}
