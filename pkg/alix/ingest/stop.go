package ingest

import (
	"strings"

	"github.com/cognicore/alix/pkg/alix/stoplist"
	"github.com/cognicore/alix/pkg/alix/token"
)

// StopFilter drops stop words. The position increment of a dropped token is
// added to the next token, leaving a hole.
type StopFilter struct {
	in    token.Stream
	stops *stoplist.Manager
	carry int
}

// NewStopFilter wraps in.
func NewStopFilter(in token.Stream, stops *stoplist.Manager) *StopFilter {
	return &StopFilter{in: in, stops: stops}
}

func (f *StopFilter) Next() (token.Token, error) {
	for {
		tok, err := f.in.Next()
		if err != nil {
			return tok, err
		}
		if tok.Kind == token.KindWord && tok.PosLen == 1 && f.stops.IsStop(strings.ToLower(tok.Term())) {
			f.carry += tok.PosInc
			continue
		}
		tok.PosInc += f.carry
		f.carry = 0
		return tok, nil
	}
}
