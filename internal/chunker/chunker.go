// Package chunker splits long text into ordered pieces that fit a provider's
// request size limit.
package chunker

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxChunkSize is the largest chunk, in characters, sent to a provider.
const DefaultMaxChunkSize = 4000

// Split returns text unchanged as a single chunk when it fits maxChunkSize.
// Longer text is packed greedily by sentence; a sentence that alone exceeds
// the limit is packed by word instead. Words are never split, so a single
// word longer than the limit becomes its own oversized chunk.
// Joining the chunks with single spaces reproduces the words of text in order.
func Split(text string, maxChunkSize int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = DefaultMaxChunkSize
	}
	if utf8.RuneCountInString(text) <= maxChunkSize {
		return []string{text}
	}

	p := packer{max: maxChunkSize}
	for _, sentence := range splitSentences(text) {
		if utf8.RuneCountInString(sentence) <= maxChunkSize {
			p.add(sentence)
			continue
		}
		p.flush()
		for _, word := range strings.Fields(sentence) {
			p.add(word)
		}
	}
	p.flush()
	return p.chunks
}

type packer struct {
	max     int
	chunks  []string
	current strings.Builder
	size    int
}

func (p *packer) add(piece string) {
	n := utf8.RuneCountInString(piece)
	if p.size > 0 && p.size+1+n > p.max {
		p.flush()
	}
	if p.size > 0 {
		p.current.WriteByte(' ')
		p.size++
	}
	p.current.WriteString(piece)
	p.size += n
}

func (p *packer) flush() {
	if p.size == 0 {
		return
	}
	p.chunks = append(p.chunks, p.current.String())
	p.current.Reset()
	p.size = 0
}

// splitSentences breaks text after '.', '!' or '?' when followed by
// whitespace. The separating whitespace belongs to neither sentence.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for i, r := range text {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		end := i + utf8.RuneLen(r)
		if end >= len(text) {
			break
		}
		next, _ := utf8.DecodeRuneInString(text[end:])
		if !unicode.IsSpace(next) {
			continue
		}
		sentences = appendTrimmed(sentences, text[start:end])
		start = end
	}
	return appendTrimmed(sentences, text[start:])
}

func appendTrimmed(dst []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		dst = append(dst, s)
	}
	return dst
}
