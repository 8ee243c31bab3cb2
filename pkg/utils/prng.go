package utils

import (
	"math/rand"
	"time"
)

// PRNGService 可设定种子的随机数源
//
// 粒子场所有随机参数（深度、相位、出生位置、延迟、内容）都从同一个
// PRNGService 取值，固定种子即可复现整段动画。
type PRNGService struct {
	rng *rand.Rand
}

// NewPRNGService 创建随机数源，seed 为 0 时使用当前时间
func NewPRNGService(seed int64) *PRNGService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PRNGService{rng: rand.New(rand.NewSource(seed))}
}

// Intn 返回 [0, n) 内的随机整数，n <= 0 时返回 0
func (s *PRNGService) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.rng.Intn(n)
}

// Float64 返回 [0, 1) 内的随机数
func (s *PRNGService) Float64() float64 {
	return s.rng.Float64()
}

// RandomInRange 返回 [min, max) 内的随机数；min == max 时返回 min
func (s *PRNGService) RandomInRange(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + s.rng.Float64()*(max-min)
}
