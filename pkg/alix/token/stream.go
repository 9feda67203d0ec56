package token

import (
	"errors"
	"io"
)

// Stream is implemented by every stage of the analysis chain. Next returns
// io.EOF once the stream is exhausted; any other error ends the session.
type Stream interface {
	Next() (Token, error)
}

// StreamFunc adapts a function to Stream.
type StreamFunc func() (Token, error)

func (f StreamFunc) Next() (Token, error) { return f() }

// SliceStream replays a fixed list of tokens.
type SliceStream struct {
	tokens []Token
	pos    int
}

// NewSliceStream returns a stream over tokens.
func NewSliceStream(tokens ...Token) *SliceStream {
	return &SliceStream{tokens: tokens}
}

func (s *SliceStream) Next() (Token, error) {
	if s.pos >= len(s.tokens) {
		return Token{}, io.EOF
	}
	t := s.tokens[s.pos]
	s.pos++
	return t, nil
}

// Collect drains a stream.
func Collect(s Stream) ([]Token, error) {
	var out []Token
	for {
		t, err := s.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, t)
	}
}

// Texts returns the Text of every token.
func Texts(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Text
	}
	return out
}
