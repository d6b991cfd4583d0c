// Package session implements the suggestion-request orchestration for the
// predictive input controller: debounced request scheduling, last-issued-wins
// staleness resolution, the candidate-list lifecycle, and candidate
// insertion back into the text buffer.
//
// A Session mirrors the text buffer owned by the front-end. Each qualifying
// edit arms the debouncer; when the quiet interval elapses, one prediction
// request is dispatched carrying a monotonically increasing sequence number.
// A response is applied only while its sequence number is still the latest
// dispatched one, so out-of-order arrivals can never flicker the candidate
// list back to an outdated set.
package session

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/khmertype/pkg/predict"
)

// EventKind tells the front-end what a session event carries
type EventKind int

const (
	// EventState signals a status or candidate-list change
	EventState EventKind = iota
	// EventInsert signals that the buffer was mutated by candidate insertion
	// and the front-end must sync its text field
	EventInsert
)

// Event is a snapshot pushed to the rendering boundary
type Event struct {
	Kind       EventKind
	Status     Status
	Candidates []predict.Suggestion
	Text       string
	Seq        uint64
}

// Config holds the session tunables
type Config struct {
	// Debounce is the quiet interval between the last edit and the request
	Debounce time.Duration
	// MaxCandidates caps the candidate list; it must stay in the shortcut
	// range so every rendered candidate has a digit key
	MaxCandidates int
	// MaxTextLen caps the snapshot length sent to the service
	MaxTextLen int
}

const (
	defaultDebounce      = 125 * time.Millisecond
	defaultMaxCandidates = 5
	defaultMaxTextLen    = 512
)

func (c Config) withDefaults() Config {
	if c.Debounce <= 0 {
		c.Debounce = defaultDebounce
	}
	if c.MaxCandidates <= 0 {
		c.MaxCandidates = defaultMaxCandidates
	}
	if c.MaxTextLen <= 0 {
		c.MaxTextLen = defaultMaxTextLen
	}
	return c
}

// Session drives one suggestion cycle per settled edit. All methods are
// safe for concurrent use; the debounce timer and fetch goroutines re-enter
// through the same mutex, and stale fetch results are suppressed at
// application time rather than cancelled in flight.
type Session struct {
	cfg       Config
	predictor predict.Predictor
	log       *log.Logger
	debounce  *Debouncer

	mu         sync.Mutex
	text       string
	seq        uint64
	candidates []predict.Suggestion
	status     Status
	closed     bool

	events chan Event
}

// New creates a session around the given predictor
func New(predictor predict.Predictor, cfg Config, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	cfg = cfg.withDefaults()
	return &Session{
		cfg:       cfg,
		predictor: predictor,
		log:       logger,
		debounce:  NewDebouncer(cfg.Debounce),
		status:    StatusIdle,
		events:    make(chan Event, 32),
	}
}

// Events returns the channel the front-end renders from. Each event is a
// full snapshot, so a dropped intermediate never leaves the UI stale.
func (s *Session) Events() <-chan Event {
	return s.events
}

// SetText records the new buffer content and debounces a suggestion trigger
func (s *Session) SetText(text string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.text = text
	s.mu.Unlock()
	s.debounce.Schedule(s.trigger)
}

// Clear empties the buffer mirror and candidate list immediately,
// invalidating any in-flight request
func (s *Session) Clear() {
	s.debounce.Stop()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.text = ""
	s.seq++
	s.candidates = nil
	s.status = StatusIdle
	s.emit(EventState)
}

// trigger fires after the debounce quiet period with whatever the buffer
// holds by then
func (s *Session) trigger() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	snapshot := s.text
	s.seq++
	seq := s.seq

	if strings.TrimSpace(snapshot) == "" {
		s.candidates = nil
		s.status = StatusIdle
		s.emit(EventState)
		s.mu.Unlock()
		return
	}
	if len(snapshot) > s.cfg.MaxTextLen {
		s.log.Debugf("Skipping request, text exceeds %d bytes", s.cfg.MaxTextLen)
		s.candidates = nil
		s.status = StatusReady
		s.emit(EventState)
		s.mu.Unlock()
		return
	}

	s.status = StatusLoading
	s.emit(EventState)
	s.mu.Unlock()

	go s.fetch(seq, snapshot)
}

// fetch performs the single request-response exchange for one trigger
func (s *Session) fetch(seq uint64, text string) {
	suggestions, err := s.predictor.Suggest(context.Background(), text, s.cfg.MaxCandidates)
	s.apply(seq, suggestions, err)
}

// apply resolves a fetch result under last-issued-wins: results for a
// superseded sequence number are discarded without touching state
func (s *Session) apply(seq uint64, suggestions []predict.Suggestion, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if seq != s.seq {
		s.log.Debugf("Discarding stale response for seq %d (current %d)", seq, s.seq)
		return
	}

	if err != nil {
		s.log.Warnf("Prediction fetch failed: %v", err)
		s.candidates = nil
		s.status = StatusError
		s.emit(EventState)
		s.status = StatusReady
		s.emit(EventState)
		return
	}

	if len(suggestions) > s.cfg.MaxCandidates {
		suggestions = suggestions[:s.cfg.MaxCandidates]
	}
	s.candidates = suggestions
	s.status = StatusReady
	s.emit(EventState)
}

// Insert appends the chosen candidate to the buffer and restarts the
// suggestion cycle for the new content. Insertion is itself a qualifying
// edit, so the usual debounce applies.
func (s *Session) Insert(word string) {
	if word == "" {
		return
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.text = InsertWord(s.text, word)
	s.candidates = nil
	s.emit(EventInsert)
	s.mu.Unlock()
	s.debounce.Schedule(s.trigger)
}

// Choose inserts the candidate at 0-based index i; out of range is a no-op
func (s *Session) Choose(i int) {
	s.mu.Lock()
	if i < 0 || i >= len(s.candidates) {
		s.mu.Unlock()
		return
	}
	word := s.candidates[i].Word
	s.mu.Unlock()
	s.Insert(word)
}

// ChooseOrdinal maps a digit shortcut (1-based ordinal) to its candidate.
// It reports whether the ordinal was occupied so the caller knows if the
// key was consumed.
func (s *Session) ChooseOrdinal(pos int) bool {
	s.mu.Lock()
	if pos < 1 || pos > len(s.candidates) {
		s.mu.Unlock()
		return false
	}
	word := s.candidates[pos-1].Word
	s.mu.Unlock()
	s.Insert(word)
	return true
}

// Text returns the session's buffer mirror
func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// Status returns the current interaction status
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Candidates returns a copy of the current candidate list
func (s *Session) Candidates() []predict.Suggestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]predict.Suggestion, len(s.candidates))
	copy(out, s.candidates)
	return out
}

// Close stops the debouncer and closes the event channel. Fetches still in
// flight resolve into a closed session and are dropped.
func (s *Session) Close() {
	s.debounce.Stop()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.events)
}

// emit pushes a snapshot event without ever blocking the session. If the
// consumer lags behind the buffer, the oldest snapshot is dropped first:
// later events carry the full state anyway.
func (s *Session) emit(kind EventKind) {
	ev := Event{
		Kind:       kind,
		Status:     s.status,
		Candidates: append([]predict.Suggestion(nil), s.candidates...),
		Text:       s.text,
		Seq:        s.seq,
	}
	select {
	case s.events <- ev:
	default:
		select {
		case <-s.events:
		default:
		}
		select {
		case s.events <- ev:
		default:
		}
	}
}

// InsertWord applies the separator rule: one space before the word when the
// buffer is non-empty and does not already end in whitespace, and one
// trailing space after it
func InsertWord(buffer, word string) string {
	var b strings.Builder
	b.WriteString(buffer)
	if buffer != "" && !endsInSpace(buffer) {
		b.WriteByte(' ')
	}
	b.WriteString(word)
	b.WriteByte(' ')
	return b.String()
}

func endsInSpace(s string) bool {
	runes := []rune(s)
	return unicode.IsSpace(runes[len(runes)-1])
}
