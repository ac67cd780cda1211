package activation

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"simpleauth/internal/core/domain/user"
)

var codeSpace = big.NewInt(10000)

// CodeGenerator produces 4-digit numeric activation codes. Codes must be
// unpredictable across users, so the source is crypto/rand rather than a
// seeded PRNG.
type CodeGenerator struct{}

func NewCodeGenerator() *CodeGenerator {
	return &CodeGenerator{}
}

func (g *CodeGenerator) GenerateActivationCode() user.Code {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		// crypto/rand failing means the process has no usable entropy
		// source. Nothing sensible to do.
		panic(fmt.Sprintf("could not generate activation code: %v", err))
	}
	return user.Code(fmt.Sprintf("%04d", n.Int64()))
}
