package prompt

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// CountTokens estimates how many tokens the prompt occupies, using the
// gpt-4 encoding as a reasonable common denominator. A failure (for
// example the encoding data being unavailable offline) is returned to the
// caller to report; it never blocks prompt generation.
func CountTokens(text string) (int, error) {
	enc, err := tiktoken.EncodingForModel("gpt-4")
	if err != nil {
		return 0, fmt.Errorf("loading token encoding: %w", err)
	}
	return len(enc.Encode(text, nil, nil)), nil
}
