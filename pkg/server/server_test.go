package server

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/khmertype/pkg/predict"
	"github.com/bastiangx/khmertype/pkg/session"
)

// stubPredictor returns canned candidates per text snapshot
type stubPredictor struct {
	results map[string][]string
}

func (s *stubPredictor) Suggest(ctx context.Context, text string, limit int) ([]predict.Suggestion, error) {
	words := s.results[text]
	if limit > 0 && len(words) > limit {
		words = words[:limit]
	}
	out := make([]predict.Suggestion, len(words))
	for i, w := range words {
		out[i] = predict.Suggestion{Word: w, Rank: i + 1}
	}
	return out, nil
}

type bridgeHarness struct {
	enc  *msgpack.Encoder
	dec  *msgpack.Decoder
	inW  *io.PipeWriter
	done chan error
}

func startBridge(t *testing.T, results map[string][]string) *bridgeHarness {
	t.Helper()
	inR, inW := io.Pipe()
	outR, outW := io.Pipe()

	sess := session.New(&stubPredictor{results: results},
		session.Config{Debounce: 10 * time.Millisecond, MaxCandidates: 5}, nil)
	bridge := NewBridge(sess, inR, outW, nil)

	done := make(chan error, 1)
	go func() { done <- bridge.Start() }()

	h := &bridgeHarness{
		enc:  msgpack.NewEncoder(inW),
		dec:  msgpack.NewDecoder(outR),
		inW:  inW,
		done: done,
	}
	t.Cleanup(func() {
		inW.Close()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("bridge did not shut down")
		}
	})

	// initial frame announces the bridge
	var initial StateResponse
	require.NoError(t, h.dec.Decode(&initial))
	require.Equal(t, "idle", initial.Status)
	return h
}

// nextFrameWith reads state frames until cond matches
func (h *bridgeHarness) nextFrameWith(t *testing.T, cond func(StateResponse) bool) StateResponse {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		var frame StateResponse
		require.NoError(t, h.dec.Decode(&frame))
		if cond(frame) {
			return frame
		}
	}
	t.Fatal("timed out waiting for state frame")
	return StateResponse{}
}

func TestBridgeInputYieldsLoadingThenReady(t *testing.T) {
	h := startBridge(t, map[string][]string{
		"ខ្ញុំ ស្រ": {"ស្រលាញ់", "ស្រុក"},
	})

	require.NoError(t, h.enc.Encode(Request{ID: "req_001", Op: "input", Text: "ខ្ញុំ ស្រ"}))

	loading := h.nextFrameWith(t, func(f StateResponse) bool { return f.Status == "loading" })
	assert.Equal(t, "req_001", loading.ID)

	ready := h.nextFrameWith(t, func(f StateResponse) bool { return f.Status == "ready" })
	assert.Equal(t, "req_001", ready.ID)
	assert.Equal(t, []string{"ស្រលាញ់", "ស្រុក"}, ready.Candidates)
	assert.Equal(t, "ខ្ញុំ ស្រ", ready.Text)
}

func TestBridgeChooseInsertsAndRefreshes(t *testing.T) {
	h := startBridge(t, map[string][]string{
		"ខ្ញុំ":           {"ស្រលាញ់"},
		"ខ្ញុំ ស្រលាញ់ ": {"អ្នក"},
	})

	require.NoError(t, h.enc.Encode(Request{ID: "in_1", Op: "input", Text: "ខ្ញុំ"}))
	h.nextFrameWith(t, func(f StateResponse) bool {
		return f.Status == "ready" && len(f.Candidates) == 1
	})

	require.NoError(t, h.enc.Encode(Request{ID: "ch_1", Op: "choose", Index: 0}))

	inserted := h.nextFrameWith(t, func(f StateResponse) bool { return f.Text == "ខ្ញុំ ស្រលាញ់ " })
	assert.Equal(t, "ch_1", inserted.ID)
	assert.Empty(t, inserted.Candidates)

	refreshed := h.nextFrameWith(t, func(f StateResponse) bool {
		return f.Status == "ready" && len(f.Candidates) == 1
	})
	assert.Equal(t, []string{"អ្នក"}, refreshed.Candidates)
}

func TestBridgeClearGoesIdle(t *testing.T) {
	h := startBridge(t, map[string][]string{"ទៅ": {"ណា"}})

	require.NoError(t, h.enc.Encode(Request{ID: "in_1", Op: "input", Text: "ទៅ"}))
	h.nextFrameWith(t, func(f StateResponse) bool { return f.Status == "ready" })

	require.NoError(t, h.enc.Encode(Request{ID: "cl_1", Op: "clear"}))
	idle := h.nextFrameWith(t, func(f StateResponse) bool { return f.Status == "idle" })
	assert.Empty(t, idle.Candidates)
	assert.Equal(t, "", idle.Text)
}

func TestBridgeHealth(t *testing.T) {
	h := startBridge(t, nil)

	require.NoError(t, h.enc.Encode(Request{ID: "hp_1", Op: "health"}))

	var resp HealthResponse
	require.NoError(t, h.dec.Decode(&resp))
	assert.Equal(t, "hp_1", resp.ID)
	assert.Equal(t, "ok", resp.Status)
}

func TestBridgeUnknownOp(t *testing.T) {
	h := startBridge(t, nil)

	require.NoError(t, h.enc.Encode(Request{ID: "bad_1", Op: "frobnicate"}))

	var resp ErrorResponse
	require.NoError(t, h.dec.Decode(&resp))
	assert.Equal(t, "bad_1", resp.ID)
	assert.Equal(t, 400, resp.Code)
}
