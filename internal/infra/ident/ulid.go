package ident

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// ULIDGenerator issues lexicographically sortable ids for transfers, rules
// and audit entries. Monotonic entropy keeps ids ordered within one process.
type ULIDGenerator struct {
	entropy *ulid.MonotonicEntropy
}

func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

func (g *ULIDGenerator) NewID() (string, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now().UTC()), g.entropy)
	if err != nil {
		return "", fmt.Errorf("generate ulid: %w", err)
	}
	return id.String(), nil
}

// NewTransferID prefixes transfer ids so they are recognizable in stream
// listings and operator tooling.
func (g *ULIDGenerator) NewTransferID() (string, error) {
	id, err := g.NewID()
	if err != nil {
		return "", err
	}
	return "transfer_" + strings.ToLower(id), nil
}
