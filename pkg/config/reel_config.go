package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ReelConfig 转轴运动配置
//
// 包含加减速曲线、停轴判定、回弹动画和符号间距等参数。
// 默认值与参考实现保持一致，修改后视觉节奏会随之改变。
//
// 配置文件位置: data/reels.yaml
type ReelConfig struct {
	// Motion 速度控制参数
	Motion MotionConfig `yaml:"motion"`

	// Stop 停轴判定参数
	Stop StopConfig `yaml:"stop"`

	// Bounce 停轴回弹动画参数
	Bounce BounceConfig `yaml:"bounce"`

	// Track 符号带几何参数
	Track TrackConfig `yaml:"track"`

	// NominalFrameRate 名义帧率
	// deltaTime 以"名义帧"为单位（1.0 = 一帧），换算成秒时除以该值
	NominalFrameRate float64 `yaml:"nominalFrameRate"`
}

// MotionConfig 速度控制参数（单位：像素/名义帧）
type MotionConfig struct {
	MaxVelocity float64 `yaml:"maxVelocity"`
	MinVelocity float64 `yaml:"minVelocity"`

	// IncreaseRate 每帧加速量
	IncreaseRate float64 `yaml:"increaseRate"`

	// BaseDecelerationRate 减速率初始值（每次旋转开始时重置）
	BaseDecelerationRate float64 `yaml:"baseDecelerationRate"`

	// DecelerationDecay 减速率每帧衰减量
	DecelerationDecay float64 `yaml:"decelerationDecay"`

	// DecelerationFloor 减速率下限，低于该值不再衰减
	DecelerationFloor float64 `yaml:"decelerationFloor"`
}

// StopConfig 停轴判定参数
type StopConfig struct {
	// Tolerance 滚动偏移与起始位置的最大允许偏差（像素）
	Tolerance float64 `yaml:"tolerance"`
}

// BounceConfig 回弹动画参数
type BounceConfig struct {
	// Amplitude 越过起始位置的距离（像素）
	Amplitude float64 `yaml:"amplitude"`
	// LegDuration 单程（出或回）时长（秒）
	LegDuration float64 `yaml:"legDuration"`
	// Oscillations 往返次数
	Oscillations int `yaml:"oscillations"`
}

// TrackConfig 符号带几何参数
type TrackConfig struct {
	// Pitch 相邻符号槽的垂直间距（像素）
	Pitch float64 `yaml:"pitch"`
	// HomeOffset 转轴静止时的滚动偏移
	HomeOffset float64 `yaml:"homeOffset"`
	// AlternateDirections 偶数列向下、奇数列向上滚动；关闭时全部向下
	AlternateDirections bool `yaml:"alternateDirections"`
}

// DefaultReelConfig 返回参考实现的默认参数
func DefaultReelConfig() *ReelConfig {
	return &ReelConfig{
		Motion: MotionConfig{
			MaxVelocity:          50,
			MinVelocity:          13,
			IncreaseRate:         0.9,
			BaseDecelerationRate: 0.5,
			DecelerationDecay:    0.0005,
			DecelerationFloor:    0.02,
		},
		Stop: StopConfig{
			Tolerance: 2,
		},
		Bounce: BounceConfig{
			Amplitude:    10,
			LegDuration:  0.03,
			Oscillations: 2,
		},
		Track: TrackConfig{
			Pitch:               80,
			HomeOffset:          0,
			AlternateDirections: true,
		},
		NominalFrameRate: 60,
	}
}

// LoadReelConfig 从 YAML 文件加载转轴配置
//
// 文件中未出现的字段保留默认值。
//
// 参数:
//   - path: 配置文件路径（如 "data/reels.yaml"）
//
// 返回:
//   - *ReelConfig: 加载成功后的配置结构
//   - error: 读取、解析或校验失败时返回错误
func LoadReelConfig(path string) (*ReelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reel config: %w", err)
	}
	return ParseReelConfig(data)
}

// ParseReelConfig 从 YAML 数据解析转轴配置（用于嵌入资源）
func ParseReelConfig(data []byte) (*ReelConfig, error) {
	cfg := DefaultReelConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse reel config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid reel config: %w", err)
	}

	return cfg, nil
}

// Validate 验证配置有效性
//
// 主要约束：
//   - 0 < MinVelocity < MaxVelocity
//   - 减速率为正且下限不高于初始值
//   - 间距、帧率为正，回弹次数非负
func (c *ReelConfig) Validate() error {
	m := c.Motion
	if m.MinVelocity <= 0 {
		return fmt.Errorf("minVelocity must be positive, got %.3f", m.MinVelocity)
	}
	if m.MaxVelocity <= m.MinVelocity {
		return fmt.Errorf("maxVelocity(%.3f) must exceed minVelocity(%.3f)", m.MaxVelocity, m.MinVelocity)
	}
	if m.IncreaseRate <= 0 {
		return fmt.Errorf("increaseRate must be positive, got %.3f", m.IncreaseRate)
	}
	if m.BaseDecelerationRate <= 0 {
		return fmt.Errorf("baseDecelerationRate must be positive, got %.4f", m.BaseDecelerationRate)
	}
	if m.DecelerationDecay < 0 {
		return fmt.Errorf("decelerationDecay must not be negative, got %.4f", m.DecelerationDecay)
	}
	if m.DecelerationFloor <= 0 || m.DecelerationFloor > m.BaseDecelerationRate {
		return fmt.Errorf("decelerationFloor(%.4f) must be in (0, baseDecelerationRate]", m.DecelerationFloor)
	}

	if c.Stop.Tolerance <= 0 {
		return fmt.Errorf("stop tolerance must be positive, got %.3f", c.Stop.Tolerance)
	}
	if c.Track.Pitch <= 0 {
		return fmt.Errorf("track pitch must be positive, got %.3f", c.Track.Pitch)
	}
	// 容差不小于半个间距时，偏移判定对任何位置都成立
	if c.Stop.Tolerance >= c.Track.Pitch/2 {
		return fmt.Errorf("stop tolerance(%.3f) must be below half the pitch(%.3f)", c.Stop.Tolerance, c.Track.Pitch)
	}

	if c.Bounce.Oscillations < 0 {
		return fmt.Errorf("bounce oscillations must not be negative, got %d", c.Bounce.Oscillations)
	}
	if c.Bounce.Oscillations > 0 && c.Bounce.LegDuration <= 0 {
		return fmt.Errorf("bounce legDuration must be positive, got %.3f", c.Bounce.LegDuration)
	}

	if c.NominalFrameRate <= 0 {
		return fmt.Errorf("nominalFrameRate must be positive, got %.1f", c.NominalFrameRate)
	}

	return nil
}

// DirectionForReel 按列索引返回滚动方向（+1 向下，-1 向上）
func (c *ReelConfig) DirectionForReel(index int) int {
	if c.Track.AlternateDirections && index%2 == 1 {
		return -1
	}
	return 1
}

// BounceDuration 回弹动画总时长（秒）
func (c *ReelConfig) BounceDuration() float64 {
	return 2 * c.Bounce.LegDuration * float64(c.Bounce.Oscillations)
}
