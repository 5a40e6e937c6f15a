// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llmtest provides a scripted llm.Model for tests.
package llmtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/pdiddy/paper-digest/internal/llm"
)

// Fake records every prompt and answers from Respond, or with a fixed
// reply derived from the call number when Respond is nil.
type Fake struct {
	// Respond, if set, produces the reply for the n-th call (0-based).
	Respond func(n int, prompt string) (string, error)

	mu      sync.Mutex
	prompts []string
}

var _ llm.Model = (*Fake)(nil)

// Complete implements llm.Model.
func (f *Fake) Complete(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	n := len(f.prompts)
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	if f.Respond != nil {
		return f.Respond(n, prompt)
	}
	return fmt.Sprintf("reply %d", n), nil
}

// Prompts returns a copy of the prompts received so far.
func (f *Fake) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

// Calls returns the number of Complete calls.
func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

// FailOn returns a Respond func that fails call n with llm.ErrModelUnavailable.
func FailOn(n int) func(int, string) (string, error) {
	return func(i int, _ string) (string, error) {
		if i == n {
			return "", fmt.Errorf("%w: scripted failure", llm.ErrModelUnavailable)
		}
		return fmt.Sprintf("reply %d", i), nil
	}
}
