package ai

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
)

// CountTokens counts cl100k_base tokens in text. When the encoding cannot be
// initialized it falls back to a bytes/4 estimate so the guard stays usable
// offline.
func CountTokens(text string) int {
	encodingOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err == nil {
			encoding = enc
		}
	})

	if encoding == nil {
		return estimateTokens(text)
	}
	return len(encoding.Encode(text, nil, nil))
}

// estimateTokens approximates the token count at four bytes per token.
func estimateTokens(text string) int {
	return (len(text) + 3) / 4
}
