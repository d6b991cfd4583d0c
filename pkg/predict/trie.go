package predict

import (
	"context"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/bastiangx/khmertype/pkg/dict"
)

// TriePredictor completes the trailing partial word from a frequency-ranked
// patricia trie. It serves offline mode and tests with the same contract as
// the HTTP client, minus the network.
type TriePredictor struct {
	trie *patricia.Trie
	top  []Suggestion
	log  *log.Logger
}

// topWordCap bounds the precomputed "start of a new word" candidate pool
const topWordCap = 32

// NewTriePredictor builds a predictor from loaded dictionary entries
func NewTriePredictor(entries []dict.Entry, logger *log.Logger) *TriePredictor {
	if logger == nil {
		logger = log.Default()
	}
	trie := patricia.NewTrie()
	for _, e := range entries {
		trie.Insert(patricia.Prefix(e.Word), e.Freq)
	}

	byFreq := make([]dict.Entry, len(entries))
	copy(byFreq, entries)
	sort.SliceStable(byFreq, func(i, j int) bool {
		return byFreq[i].Freq > byFreq[j].Freq
	})
	if len(byFreq) > topWordCap {
		byFreq = byFreq[:topWordCap]
	}
	top := make([]Suggestion, len(byFreq))
	for i, e := range byFreq {
		top[i] = Suggestion{Word: e.Word, Rank: i + 1}
	}

	logger.Debugf("Trie predictor ready with %d words", len(entries))
	return &TriePredictor{trie: trie, top: top, log: logger}
}

// Suggest completes the last token of text. When text ends on whitespace
// there is no partial word to complete, so the most frequent dictionary
// words stand in as next-word candidates.
func (p *TriePredictor) Suggest(ctx context.Context, text string, limit int) ([]Suggestion, error) {
	if limit <= 0 {
		return nil, nil
	}

	prefix := lastToken(text)
	if prefix == "" {
		if len(p.top) > limit {
			return p.top[:limit], nil
		}
		return p.top, nil
	}

	type scored struct {
		word string
		freq int
	}
	var matches []scored

	err := p.trie.VisitSubtree(patricia.Prefix(prefix), func(pr patricia.Prefix, item patricia.Item) error {
		word := string(pr)
		if word == prefix {
			return nil
		}
		matches = append(matches, scored{word: word, freq: item.(int)})
		return nil
	})
	if err != nil {
		p.log.Errorf("Trie traversal failed for %q: %v", prefix, err)
		return nil, nil
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].freq > matches[j].freq
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	suggestions := make([]Suggestion, len(matches))
	for i, m := range matches {
		suggestions[i] = Suggestion{Word: m.word, Rank: i + 1}
	}
	return suggestions, nil
}

// lastToken returns the trailing whitespace-separated token of text,
// or "" if text is empty or ends on whitespace
func lastToken(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	if r := text[len(text)-1]; r == ' ' || r == '\t' || r == '\n' {
		return ""
	}
	fields := strings.Fields(text)
	return fields[len(fields)-1]
}
