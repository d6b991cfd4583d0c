// Package cli provides a line-based input handler for debugging the
// prediction pipeline without the full terminal UI
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/khmertype/internal/utils"
	"github.com/bastiangx/khmertype/pkg/predict"
	"github.com/bastiangx/khmertype/pkg/session"
)

// InputHandler reads lines from stdin, shows ranked candidates, and lets a
// digit line pick one into the running buffer. It calls the predictor
// synchronously: line input is already "debounced" by the enter key.
type InputHandler struct {
	predictor predict.Predictor
	limit     int
	noFilter  bool

	buffer     string
	candidates []predict.Suggestion
}

// NewInputHandler creates a new CLI input handler
func NewInputHandler(predictor predict.Predictor, limit int, noFilter bool) *InputHandler {
	return &InputHandler{
		predictor: predictor,
		limit:     limit,
		noFilter:  noFilter,
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin, and feeds the
// trimmed line to handleInput. A lone digit picks the candidate at that
// position; ":clear" resets the buffer; anything else replaces it.
// Loop terminates if an error occurs while reading from stdin.
func (h *InputHandler) Start() error {
	log.Print("khmertype CLI [BETA]")
	reader := bufio.NewReader(os.Stdin)
	log.Print("type Khmer text and press Enter for suggestions, a digit 1-5 to insert (Ctrl+C to exit):")

	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		h.handleInput(line)
	}
}

// handleInput processes one line of input
func (h *InputHandler) handleInput(line string) {
	if line == ":clear" {
		h.buffer = ""
		h.candidates = nil
		log.Print("buffer cleared")
		return
	}

	if pos := utils.DigitValue(line); pos >= 1 {
		if pos > len(h.candidates) {
			log.Warnf("No candidate at position %d", pos)
			return
		}
		h.buffer = session.InsertWord(h.buffer, h.candidates[pos-1].Word)
		log.Printf("buffer: %s", h.buffer)
		h.refresh(h.buffer)
		return
	}

	h.buffer = line
	h.refresh(line)
}

// refresh fetches and prints candidates for the current buffer
func (h *InputHandler) refresh(text string) {
	if !h.noFilter {
		if !utils.IsValidInput(text) {
			log.Warnf("No suggestions for input: '%s' (filtered out)", text)
			h.candidates = nil
			return
		}
	} else {
		log.Debug("Input filtering disabled - sending all inputs")
	}

	start := time.Now()
	log.Debug("Processing request for", "text", text)

	candidates, err := h.predictor.Suggest(context.Background(), text, h.limit)
	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for '%s'", elapsed, text)

	if err != nil {
		log.Warnf("Prediction failed: %v (continuing with empty list)", err)
		h.candidates = nil
		return
	}
	h.candidates = candidates

	if len(candidates) == 0 {
		log.Warnf("No suggestions found for: '%s'", text)
		return
	}

	log.Printf("Found %d suggestions for '%s':", len(candidates), text)
	for i, c := range candidates {
		clWord := fmt.Sprintf("\033[38;5;75m%s\033[0m", c.Word)
		log.Printf("%2d. %s", i+1, clWord)
	}
}
