package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"puzzle-service/internal/domain"
)

// StripFences removes markdown code fences a generator may wrap around JSON
// despite being told not to.
func StripFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```JSON", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// Decode parses raw JSON into the content shape of kind. It does not
// validate; see Validate.
func Decode(kind domain.Kind, raw []byte) (domain.Content, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, fmt.Errorf("decode %s: empty document", kind)
	}
	switch kind {
	case domain.KindMatching:
		// Generators return the bare pair array; a wrapping object is accepted too.
		if raw[0] == '[' {
			var pairs []domain.Pair
			if err := json.Unmarshal(raw, &pairs); err != nil {
				return nil, fmt.Errorf("decode %s: %w", kind, err)
			}
			return domain.MatchingContent{Pairs: pairs}, nil
		}
		return decodeAs[domain.MatchingContent](kind, raw)
	case domain.KindQuiz:
		return decodeAs[domain.QuizContent](kind, raw)
	case domain.KindReveal:
		return decodeAs[domain.RevealContent](kind, raw)
	case domain.KindFirstLetter:
		return decodeAs[domain.FirstLetterContent](kind, raw)
	case domain.KindCount:
		return decodeAs[domain.CountContent](kind, raw)
	case domain.KindMath:
		return decodeAs[domain.MathContent](kind, raw)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}
}

func decodeAs[T domain.Content](kind domain.Kind, raw []byte) (domain.Content, error) {
	var c T
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}
	return c, nil
}
