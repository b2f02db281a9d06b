// Package textdiff computes word- or character-granularity diffs between
// two text snapshots as a flat sequence of typed segments.
package textdiff

import (
	"unicode"

	"github.com/sergi/go-diff/diffmatchpatch"
)

type SegmentKind int

const (
	Unchanged SegmentKind = iota
	Added
	Removed
)

func (k SegmentKind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "unchanged"
	}
}

// Mode selects the tokenization granularity used before diffing.
type Mode int

const (
	Words Mode = iota
	Chars
)

func (m Mode) String() string {
	if m == Chars {
		return "chars"
	}
	return "words"
}

func ParseMode(s string) (Mode, bool) {
	switch s {
	case "words", "":
		return Words, true
	case "chars":
		return Chars, true
	default:
		return Words, false
	}
}

// Segment is one contiguous run of text classified by the diff. Index is
// its position in the sequence and is unique within one Compute result.
type Segment struct {
	Value string
	Kind  SegmentKind
	Index int
}

// Compute diffs oldText against newText at the given granularity. The
// result covers both inputs: concatenating every non-Added value yields
// oldText, concatenating every non-Removed value yields newText.
func Compute(oldText, newText string, mode Mode) []Segment {
	dmp := diffmatchpatch.New()

	var diffs []diffmatchpatch.Diff
	if mode == Chars {
		diffs = dmp.DiffMain(oldText, newText, false)
	} else {
		oldRunes, newRunes, vocab := wordsToRunes(oldText, newText)
		diffs = dmp.DiffMainRunes(oldRunes, newRunes, false)
		diffs = decodeWordDiffs(diffs, vocab)
	}
	diffs = dmp.DiffCleanupMerge(diffs)

	segments := make([]Segment, 0, len(diffs))
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		kind := Unchanged
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			kind = Added
		case diffmatchpatch.DiffDelete:
			kind = Removed
		}
		segments = append(segments, Segment{Value: d.Text, Kind: kind, Index: len(segments)})
	}
	return segments
}

// wordsToRunes tokenizes both texts into words and separators, then encodes
// each distinct token as a single rune so the core diff runs at word
// granularity. Same trick as diffmatchpatch's DiffLinesToRunes, with a
// token vocabulary instead of a line array.
func wordsToRunes(oldText, newText string) ([]rune, []rune, []string) {
	vocab := make([]string, 0, 64)
	seen := make(map[string]rune, 64)

	encode := func(text string) []rune {
		tokens := tokenizeWords(text)
		out := make([]rune, 0, len(tokens))
		for _, tok := range tokens {
			r, ok := seen[tok]
			if !ok {
				r = tokenRune(len(vocab))
				seen[tok] = r
				vocab = append(vocab, tok)
			}
			out = append(out, r)
		}
		return out
	}

	oldRunes := encode(oldText)
	newRunes := encode(newText)
	return oldRunes, newRunes, vocab
}

// tokenRune maps a vocabulary index to a rune, skipping the surrogate
// range, which cannot round-trip through a Go string.
func tokenRune(i int) rune {
	r := rune(i + 1)
	if r >= 0xd800 {
		r += 0x800
	}
	return r
}

func tokenIndex(r rune) int {
	if r >= 0xd800+0x800 {
		r -= 0x800
	}
	return int(r) - 1
}

func decodeWordDiffs(diffs []diffmatchpatch.Diff, vocab []string) []diffmatchpatch.Diff {
	out := make([]diffmatchpatch.Diff, 0, len(diffs))
	for _, d := range diffs {
		text := make([]byte, 0, len(d.Text))
		for _, r := range d.Text {
			idx := tokenIndex(r)
			if idx >= 0 && idx < len(vocab) {
				text = append(text, vocab[idx]...)
			}
		}
		out = append(out, diffmatchpatch.Diff{Type: d.Type, Text: string(text)})
	}
	return out
}

// tokenizeWords splits text into alternating runs of word characters,
// whitespace, and individual punctuation runes, so that whitespace and
// punctuation form their own diffable tokens.
func tokenizeWords(text string) []string {
	tokens := make([]string, 0, len(text)/4)
	runes := []rune(text)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case isWordRune(r):
			start := i
			for i < len(runes) && isWordRune(runes[i]) {
				i++
			}
			tokens = append(tokens, string(runes[start:i]))
		case unicode.IsSpace(r):
			start := i
			for i < len(runes) && unicode.IsSpace(runes[i]) {
				i++
			}
			tokens = append(tokens, string(runes[start:i]))
		default:
			tokens = append(tokens, string(r))
			i++
		}
	}
	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '\''
}
