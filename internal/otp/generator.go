package otp

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strconv"
)

const (
	codeMin   = 100000
	codeRange = 900000
)

// Generator produces six-digit numeric codes.
type Generator interface {
	Next() (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func() (string, error)

func (f GeneratorFunc) Next() (string, error) { return f() }

// RandomGenerator draws codes uniformly from 100000-999999.
type RandomGenerator struct {
	source io.Reader
}

func NewGenerator() *RandomGenerator {
	return &RandomGenerator{source: rand.Reader}
}

// NewGeneratorFrom reads randomness from source instead of crypto/rand.
func NewGeneratorFrom(source io.Reader) *RandomGenerator {
	return &RandomGenerator{source: source}
}

func (g *RandomGenerator) Next() (string, error) {
	n, err := rand.Int(g.source, big.NewInt(codeRange))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return strconv.FormatInt(n.Int64()+codeMin, 10), nil
}
