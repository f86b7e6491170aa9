package local

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource 随机源
type RandomSource interface {
	// IntN 返回 [0, n) 内的整数
	IntN(n int) int
}

// cryptoRNG 默认随机源
type cryptoRNG struct{}

func (cryptoRNG) IntN(n int) int {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		return rand.IntN(n)
	}
	return int(binary.BigEndian.Uint64(buf[:]) % uint64(n))
}

// DefaultRNG 加密随机源
func DefaultRNG() RandomSource { return cryptoRNG{} }

// seededRNG 可复现的随机源（测试与演示脚本）
type seededRNG struct{ r *rand.Rand }

// NewSeededRNG 以固定种子创建随机源
func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) IntN(n int) int { return s.r.IntN(n) }
