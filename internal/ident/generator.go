package ident

import (
	"context"
	"crypto/rand"
	"fmt"
	mrand "math/rand/v2"

	"github.com/skywings/skybooking/internal/domain"
)

// Alphabet is the 32-symbol tracking-code alphabet. 0/O and 1/I are excluded
// so a code read over the phone survives the round trip.
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const (
	codeRandomLen   = 6
	maxMintAttempts = 10
)

// CodeStore answers whether a tracking code has already been issued.
type CodeStore interface {
	CodeExists(ctx context.Context, code string) (bool, error)
}

// Generator mints tracking codes, seat labels and gate labels. Tracking
// codes are verified against the store before being handed out: uniqueness
// is checked, not assumed.
type Generator struct {
	store  CodeStore
	prefix string
}

func NewGenerator(store CodeStore, carrierPrefix string) *Generator {
	return &Generator{store: store, prefix: carrierPrefix}
}

// TrackingCode returns a fresh carrier-prefixed code that is not present in
// the store. After maxMintAttempts collisions it gives up with
// ErrIdentifierSpaceExhausted.
func (g *Generator) TrackingCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxMintAttempts; attempt++ {
		code, err := g.randomCode()
		if err != nil {
			return "", fmt.Errorf("generate tracking code: %w", err)
		}
		exists, err := g.store.CodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check tracking code: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", domain.ErrIdentifierSpaceExhausted
}

func (g *Generator) randomCode() (string, error) {
	buf := make([]byte, codeRandomLen)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, 0, len(g.prefix)+codeRandomLen)
	out = append(out, g.prefix...)
	for _, b := range buf {
		out = append(out, Alphabet[int(b)%len(Alphabet)])
	}
	return string(out), nil
}

// SeatLabel picks a random seat within the aircraft's actual layout, e.g.
// "14A" on a 30-row A-F cabin. Availability is SeatInventory's concern.
// A degenerate layout yields "".
func (g *Generator) SeatLabel(rows int, letters string) string {
	if rows < 1 || letters == "" {
		return ""
	}
	row := mrand.IntN(rows) + 1
	letter := letters[mrand.IntN(len(letters))]
	return fmt.Sprintf("%d%c", row, letter)
}

// GateLabel picks a random gate within the airport's terminals and gate range,
// e.g. "B22". A degenerate layout yields "".
func (g *Generator) GateLabel(terminals string, gates int) string {
	if terminals == "" || gates < 1 {
		return ""
	}
	terminal := terminals[mrand.IntN(len(terminals))]
	gate := mrand.IntN(gates) + 1
	return fmt.Sprintf("%c%d", terminal, gate)
}
