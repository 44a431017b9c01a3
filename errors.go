package ccg

import (
	"fmt"
)

// VocabularyError is returned when a token has no category in the lexicon.
// The parse is aborted and no chart is returned
type VocabularyError struct {
	Token    string
	Position int
}

func (e *VocabularyError) Error() string {
	return fmt.Sprintf("no categories for '%s' at position %d", e.Token, e.Position)
}

// LexiconError reports a malformed lexicon line
type LexiconError struct {
	// Line number starting from 1, 0 if unknown
	Line int
	Msg  string
}

func (e *LexiconError) Error() string {
	if e.Line == 0 {
		return "lexicon: " + e.Msg
	}
	return fmt.Sprintf("lexicon:%d: %s", e.Line, e.Msg)
}
