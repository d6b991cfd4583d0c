// Package dict loads word-frequency lists used by the offline predictor.
//
// The expected format is one entry per line, UTF-8, tab separated:
//
//	ខ្ញុំ	48213
//	ស្រលាញ់	10977
//
// Lines starting with '#' and malformed lines are skipped with a warning.
package dict

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// Entry is a single dictionary word with its corpus frequency
type Entry struct {
	Word string
	Freq int
}

// Load reads a frequency list from path, keeping at most maxWords entries
// in file order. maxWords <= 0 means no cap.
func Load(path string, maxWords int) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dictionary %s: %w", path, err)
	}
	defer file.Close()

	var entries []Entry
	skipped := 0
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		word, freq, ok := parseLine(line)
		if !ok {
			skipped++
			log.Debugf("Skipping malformed dictionary line %d: %q", lineNum, line)
			continue
		}

		entries = append(entries, Entry{Word: word, Freq: freq})
		if maxWords > 0 && len(entries) >= maxWords {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading dictionary %s: %w", path, err)
	}

	if skipped > 0 {
		log.Warnf("Skipped %d malformed lines in %s", skipped, path)
	}
	log.Debugf("Loaded %d dictionary entries from %s", len(entries), path)
	return entries, nil
}

// parseLine splits "word<TAB>freq"; a missing frequency defaults to 1
// so plain wordlists still load
func parseLine(line string) (string, int, bool) {
	parts := strings.SplitN(line, "\t", 2)
	word := strings.TrimSpace(parts[0])
	if word == "" {
		return "", 0, false
	}
	if len(parts) == 1 {
		return word, 1, true
	}
	freq, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || freq < 0 {
		return "", 0, false
	}
	return word, freq, true
}
