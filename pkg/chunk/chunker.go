package chunk

import "strings"

// Split packs whitespace-delimited words into chunks of at most maxChars
// characters, joining words within a chunk with single spaces. Words are
// never split: a single word longer than maxChars becomes its own oversized
// chunk. Chunk indices are contiguous from 0 and stable for a given
// (text, maxChars) pair, which the QA citations rely on.
func Split(text string, maxChars int) []string {
	words := strings.Fields(text)
	chunks := make([]string, 0, len(words)/8+1)

	var current []string
	length := 0
	for _, w := range words {
		newLen := length + len(w)
		if length > 0 {
			newLen++ // joining space
		}
		if newLen > maxChars && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current = append(current[:0], w)
			length = len(w)
			continue
		}
		current = append(current, w)
		length = newLen
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}
	return chunks
}
