// Package ids issues human-readable identifiers made of a letter prefix and a
// zero-padded counter, e.g. "B017".
package ids

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Domenick1991/saraye/internal/domain"
)

const (
	PrefixBooking  = "B"
	PrefixProperty = "P"
	PrefixAddress  = "ADDR"
	PrefixPayment  = "PAY"
	PrefixReview   = "R"
	PrefixReport   = "RPT"
)

func Format(prefix string, n int64) string {
	return fmt.Sprintf("%s%03d", prefix, n)
}

// Parse returns the counter of id, which must be prefix followed by digits only.
func Parse(prefix, id string) (int64, error) {
	digits, ok := strings.CutPrefix(id, prefix)
	if !ok || digits == "" {
		return 0, fmt.Errorf("%w: %q is not a %s identifier", domain.ErrInvalidInput, id, prefix)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q is not a %s identifier", domain.ErrInvalidInput, id, prefix)
		}
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", domain.ErrInvalidInput, id, err)
	}
	return n, nil
}

// Sequence hands out the next counter value for a prefix. Implementations must
// never return the same value twice for one prefix.
type Sequence interface {
	NextValue(ctx context.Context, prefix string) (int64, error)
}

type Generator struct {
	seq Sequence
}

func NewGenerator(seq Sequence) *Generator {
	return &Generator{seq: seq}
}

func (g *Generator) Next(ctx context.Context, prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("%w: empty identifier prefix", domain.ErrInvalidInput)
	}
	n, err := g.seq.NextValue(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("next %s identifier: %w", prefix, err)
	}
	return Format(prefix, n), nil
}
