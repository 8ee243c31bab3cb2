package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// 粒子场配置
//
// 默认配置文件位置: data/field.yaml（嵌入二进制）
// 所有"每帧"常量都按 60 FPS 调校，引擎按实际帧间隔 dt 缩放。

// Range 闭区间 [Min, Max]
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Span 返回区间长度
func (r Range) Span() float64 {
	return r.Max - r.Min
}

// Contains 判断 v 是否落在区间内
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// PointerConfig 指针交互参数
type PointerConfig struct {
	// Radius 指针影响半径（像素）
	Radius float64 `yaml:"radius"`
	// Boost 指针正下方时叠加到透明度上的最大高亮值
	Boost float64 `yaml:"boost"`
	// GlowThreshold 高亮值超过此阈值时绘制描边/光晕
	GlowThreshold float64 `yaml:"glowThreshold"`
	// RepelStrength 排斥力系数（每帧），0 表示关闭排斥
	RepelStrength float64 `yaml:"repelStrength"`
	// MaxDrift 排斥漂移速度上限（像素/帧）
	MaxDrift float64 `yaml:"maxDrift"`
	// DriftDamping 漂移速度每帧衰减系数
	DriftDamping float64 `yaml:"driftDamping"`
}

// FieldConfig 粒子场引擎配置
type FieldConfig struct {
	PoolSize int `yaml:"poolSize"`

	// AlphaBase 透明度基数，实际初始透明度 = AlphaBase * Depth
	AlphaBase float64 `yaml:"alphaBase"`
	// SwayAmplitude 水平摆动幅度（像素/帧）
	SwayAmplitude float64 `yaml:"swayAmplitude"`
	// SwayFrequency 摆动角频率（弧度/毫秒）
	SwayFrequency float64 `yaml:"swayFrequency"`
	// FrameMultiplier 速度到每帧位移的固定乘数
	FrameMultiplier float64 `yaml:"frameMultiplier"`
	// CenterPull 向水平中心回拉的比例（每帧）
	CenterPull float64 `yaml:"centerPull"`
	// BaseSize 名义尺寸（像素），渲染尺寸 = BaseSize * Depth
	BaseSize float64 `yaml:"baseSize"`

	// FadeThreshold 距顶部多少像素开始淡出
	FadeThreshold float64 `yaml:"fadeThreshold"`
	// FadeDecrement 淡出区内每帧透明度递减量
	FadeDecrement float64 `yaml:"fadeDecrement"`
	// TopMargin 越过顶部多少像素后回收
	TopMargin float64 `yaml:"topMargin"`
	// OverflowMargin 回收时水平位置允许超出左右边缘的距离
	OverflowMargin float64 `yaml:"overflowMargin"`

	SpeedRange   Range `yaml:"speedRange"`
	DepthRange   Range `yaml:"depthRange"`
	SpawnOffset  Range `yaml:"spawnOffset"`  // 回收后放置在底边以下的额外距离
	InitialDelay Range `yaml:"initialDelay"` // 初始入场延迟（毫秒）
	RecycleDelay Range `yaml:"recycleDelay"` // 回收后的再入场延迟（毫秒）

	Pointer PointerConfig `yaml:"pointer"`

	// MaxFrameDelta 单帧最大时间步长（秒），防止切后台恢复时跳变
	MaxFrameDelta float64 `yaml:"maxFrameDelta"`
	// Seed 随机种子，0 表示使用当前时间
	Seed int64 `yaml:"seed"`
}

// DefaultFieldConfig 返回默认粒子场配置（与 data/field.yaml 一致）
func DefaultFieldConfig() FieldConfig {
	return FieldConfig{
		PoolSize:        30,
		AlphaBase:       0.55,
		SwayAmplitude:   0.3,
		SwayFrequency:   0.001,
		FrameMultiplier: 1.0,
		CenterPull:      0.0005,
		BaseSize:        28,
		FadeThreshold:   160,
		FadeDecrement:   0.01,
		TopMargin:       60,
		OverflowMargin:  80,
		SpeedRange:      Range{Min: 1.5, Max: 2.5},
		DepthRange:      Range{Min: 0.6, Max: 1.5},
		SpawnOffset:     Range{Min: 20, Max: 160},
		InitialDelay:    Range{Min: 0, Max: 2500},
		RecycleDelay:    Range{Min: 0, Max: 1200},
		Pointer: PointerConfig{
			Radius:        180,
			Boost:         0.45,
			GlowThreshold: 0.3,
			RepelStrength: 0.05,
			MaxDrift:      1.5,
			DriftDamping:  0.95,
		},
		MaxFrameDelta: 0.1,
	}
}

// ParseFieldConfig 从 YAML 数据解析粒子场配置
//
// 未出现在 YAML 中的字段保留默认值。
func ParseFieldConfig(data []byte) (FieldConfig, error) {
	cfg := DefaultFieldConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FieldConfig{}, fmt.Errorf("failed to parse field config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return FieldConfig{}, fmt.Errorf("invalid field config: %w", err)
	}
	return cfg, nil
}

// LoadFieldConfig 从文件加载粒子场配置
//
// 参数:
//   - path: 配置文件路径（如 "data/field.yaml"）
//
// 返回:
//   - FieldConfig: 加载并验证后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadFieldConfig(path string) (FieldConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FieldConfig{}, fmt.Errorf("failed to read field config %s: %w", path, err)
	}
	cfg, err := ParseFieldConfig(data)
	if err != nil {
		return FieldConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate 验证配置有效性
//
// 检查项：
//   - 池大小至少为 1
//   - 所有区间 Min <= Max
//   - 深度、速度下限为正（速度与深度成反比，深度不能为 0）
//   - AlphaBase * DepthRange.Max <= 1（保证透明度不超过 1）
//   - 淡出递减量、名义尺寸为正
func (c *FieldConfig) Validate() error {
	if c.PoolSize < 1 {
		return fmt.Errorf("poolSize must be >= 1, got %d", c.PoolSize)
	}

	ranges := []struct {
		name string
		r    Range
	}{
		{"speedRange", c.SpeedRange},
		{"depthRange", c.DepthRange},
		{"spawnOffset", c.SpawnOffset},
		{"initialDelay", c.InitialDelay},
		{"recycleDelay", c.RecycleDelay},
	}
	for _, nr := range ranges {
		if nr.r.Min > nr.r.Max {
			return fmt.Errorf("%s invalid: min(%.3f) > max(%.3f)", nr.name, nr.r.Min, nr.r.Max)
		}
	}

	if c.DepthRange.Min <= 0 {
		return fmt.Errorf("depthRange.min must be > 0, got %.3f", c.DepthRange.Min)
	}
	if c.SpeedRange.Min <= 0 {
		return fmt.Errorf("speedRange.min must be > 0, got %.3f", c.SpeedRange.Min)
	}
	if c.SpawnOffset.Min < 0 || c.InitialDelay.Min < 0 || c.RecycleDelay.Min < 0 {
		return fmt.Errorf("spawnOffset and delay ranges must not be negative")
	}
	if c.AlphaBase <= 0 || c.AlphaBase*c.DepthRange.Max > 1 {
		return fmt.Errorf("alphaBase*depthRange.max must be in (0, 1], got %.3f", c.AlphaBase*c.DepthRange.Max)
	}
	if c.FadeDecrement <= 0 {
		return fmt.Errorf("fadeDecrement must be > 0, got %.3f", c.FadeDecrement)
	}
	if c.BaseSize <= 0 {
		return fmt.Errorf("baseSize must be > 0, got %.3f", c.BaseSize)
	}
	if c.FrameMultiplier <= 0 {
		return fmt.Errorf("frameMultiplier must be > 0, got %.3f", c.FrameMultiplier)
	}
	if c.FadeThreshold < 0 || c.TopMargin < 0 || c.OverflowMargin < 0 {
		return fmt.Errorf("fadeThreshold, topMargin and overflowMargin must not be negative")
	}
	if c.Pointer.Radius < 0 || c.Pointer.Boost < 0 {
		return fmt.Errorf("pointer radius and boost must not be negative")
	}
	if c.Pointer.DriftDamping < 0 || c.Pointer.DriftDamping > 1 {
		return fmt.Errorf("pointer.driftDamping must be in [0, 1], got %.3f", c.Pointer.DriftDamping)
	}
	if c.MaxFrameDelta <= 0 {
		return fmt.Errorf("maxFrameDelta must be > 0, got %.3f", c.MaxFrameDelta)
	}
	return nil
}

// MaxAlpha 返回任何槽位可能达到的最大透明度（最大深度对应的初始透明度）
func (c *FieldConfig) MaxAlpha() float64 {
	return c.AlphaBase * c.DepthRange.Max
}
