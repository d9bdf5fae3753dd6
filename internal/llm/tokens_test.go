package llm

import (
	"strings"
	"testing"
)

func TestNewTokenBudget_RejectsNonPositive(t *testing.T) {
	if _, err := NewTokenBudget(DefaultEncoding, 0); err == nil {
		t.Fatal("NewTokenBudget() expected error for zero budget")
	}
}

func TestTokenBudget_Truncate(t *testing.T) {
	budget, err := NewTokenBudget(DefaultEncoding, 8)
	if err != nil {
		// The encoding is downloaded on first use.
		t.Skipf("tiktoken encoding unavailable: %v", err)
	}

	short := "Title: milk"
	if got := budget.Truncate(short); got != short {
		t.Errorf("Truncate(short) = %q, want unchanged", got)
	}

	long := strings.Repeat("groceries and errands ", 50)
	got := budget.Truncate(long)
	if !strings.HasPrefix(long, got) {
		t.Errorf("Truncate(long) = %q, want a prefix of the input", got)
	}
	if n := budget.Count(got); n > 8 {
		t.Errorf("Truncate(long) has %d tokens, want <= 8", n)
	}
}
