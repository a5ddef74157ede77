package token

import "github.com/google/uuid"

// Generator produces opaque random token strings for recovery tokens.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate() string {
	return uuid.NewString()
}
