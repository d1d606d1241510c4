package generator

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand/v2"
	"sync"
)

// Source yields uniform integers in [0, n). n is always positive.
type Source interface {
	IntN(n int) int
}

type mathSource struct {
	mu sync.Mutex
	r  *mrand.Rand
}

// NewMathSource returns a non-cryptographic source seeded from the runtime.
func NewMathSource() Source {
	return &mathSource{r: mrand.New(mrand.NewPCG(mrand.Uint64(), mrand.Uint64()))}
}

// NewSeededSource returns a deterministic source. Two sources built with the
// same seed produce the same sequence.
func NewSeededSource(seed uint64) Source {
	return &mathSource{r: mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *mathSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

// CryptoSource draws from crypto/rand. It panics if the system entropy source
// fails, which crypto/rand documents as unrecoverable.
type CryptoSource struct{}

func (CryptoSource) IntN(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("generator: crypto/rand failed: " + err.Error())
	}
	return int(v.Int64())
}

// SourceByName maps a configuration value to a Source. Unknown names fall
// back to the math source.
func SourceByName(name string) Source {
	if name == "crypto" {
		return CryptoSource{}
	}
	return NewMathSource()
}

var (
	defaultOnce   sync.Once
	defaultSource Source
)

func fallbackSource() Source {
	defaultOnce.Do(func() { defaultSource = NewMathSource() })
	return defaultSource
}
