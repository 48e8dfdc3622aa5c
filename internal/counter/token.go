package counter

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter counts tiktoken cl100k_base tokens.
type TokenCounter struct {
	encoding *tiktoken.Tiktoken
	mu       sync.RWMutex // protects encoding access
}

// NewTokenCounter creates a TokenCounter with the cl100k_base encoding.
func NewTokenCounter() (Counter, error) {
	encoding, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cl100k_base encoding: %w", err)
	}
	return &TokenCounter{encoding: encoding}, nil
}

// Count returns the number of tokens in text. Safe for concurrent use.
func (tc *TokenCounter) Count(text string) int {
	if text == "" {
		return 0
	}

	tc.mu.RLock()
	defer tc.mu.RUnlock()

	return len(tc.encoding.Encode(text, nil, nil))
}

// Name returns the name of this counting method.
func (tc *TokenCounter) Name() string { return "tokens (cl100k_base)" }
