package local

import (
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config 演示后端配置
//
// 配置文件位置: data/backend.yaml
type Config struct {
	// ReelCount 初始列数
	ReelCount int `yaml:"reelCount"`
	// RowCount 初始行数
	RowCount int `yaml:"rowCount"`
	// ReelSize 每列符号带长度，停轴标签为 "0".."ReelSize-1"
	ReelSize int `yaml:"reelSize"`

	// Seed 随机种子；0 表示使用加密随机源
	Seed uint64 `yaml:"seed"`

	// Bet 每次旋转的投注额，派彩 = Bet × 赔率
	Bet string `yaml:"bet"`

	// MinMatch 从最左列开始连续相同外观的最少列数
	MinMatch int `yaml:"minMatch"`

	// Faces 符号外观池（下标即 Symbol.Face）
	Faces []FaceConfig `yaml:"faces"`

	// Scripted 预设出奖结果，按顺序使用，用完后转为随机
	Scripted []ScriptedOutcome `yaml:"scripted"`

	bet decimal.Decimal
}

// FaceConfig 一种符号外观
type FaceConfig struct {
	Name string `yaml:"name"`
	// Weight 生成符号带时的相对权重
	Weight int `yaml:"weight"`
	// Pays 连续列数 → 赔率
	Pays map[int]string `yaml:"pays"`

	pays map[int]decimal.Decimal
}

// ScriptedOutcome 预设的停轴标签（长度须等于当前列数）
type ScriptedOutcome struct {
	Stops []string `yaml:"stops"`
}

// 配置错误
var (
	ErrNoFaces     = errors.New("face pool is empty")
	ErrInvalidBet  = errors.New("bet must be a non-negative decimal")
	ErrInvalidSize = errors.New("reel size must cover the row count")
)

// DefaultConfig 返回内置的演示配置
func DefaultConfig() *Config {
	cfg := &Config{
		ReelCount: 5,
		RowCount:  3,
		ReelSize:  7,
		Bet:       "1",
		MinMatch:  3,
		Faces: []FaceConfig{
			{Name: "cherry", Weight: 6, Pays: map[int]string{3: "2", 4: "5", 5: "10"}},
			{Name: "lemon", Weight: 5, Pays: map[int]string{3: "3", 4: "6", 5: "12"}},
			{Name: "bell", Weight: 4, Pays: map[int]string{3: "5", 4: "10", 5: "25"}},
			{Name: "star", Weight: 3, Pays: map[int]string{3: "8", 4: "20", 5: "50"}},
			{Name: "seven", Weight: 1, Pays: map[int]string{3: "20", 4: "50", 5: "100"}},
		},
	}
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("default backend config is invalid: %v", err))
	}
	return cfg
}

// LoadConfig 从 YAML 文件加载演示后端配置
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read backend config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig 从 YAML 数据解析演示后端配置
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse backend config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid backend config: %w", err)
	}
	return &cfg, nil
}

// Validate 验证配置并解析金额
func (c *Config) Validate() error {
	if c.ReelCount <= 0 {
		return fmt.Errorf("reelCount %d: must be positive", c.ReelCount)
	}
	if c.RowCount <= 0 {
		return fmt.Errorf("rowCount %d: must be positive", c.RowCount)
	}
	if c.ReelSize < c.RowCount {
		return fmt.Errorf("reelSize %d, rowCount %d: %w", c.ReelSize, c.RowCount, ErrInvalidSize)
	}
	if len(c.Faces) == 0 {
		return ErrNoFaces
	}
	if c.MinMatch <= 0 {
		c.MinMatch = 3
	}

	bet := c.Bet
	if bet == "" {
		bet = "1"
	}
	parsed, err := decimal.NewFromString(bet)
	if err != nil || parsed.IsNegative() {
		return fmt.Errorf("bet %q: %w", c.Bet, ErrInvalidBet)
	}
	c.bet = parsed

	for i := range c.Faces {
		f := &c.Faces[i]
		if f.Name == "" {
			return fmt.Errorf("face %d: name is required", i)
		}
		if f.Weight <= 0 {
			return fmt.Errorf("face %s: weight must be positive", f.Name)
		}
		f.pays = make(map[int]decimal.Decimal, len(f.Pays))
		for count, raw := range f.Pays {
			p, err := decimal.NewFromString(raw)
			if err != nil || p.IsNegative() {
				return fmt.Errorf("face %s pays[%d] = %q: invalid multiplier", f.Name, count, raw)
			}
			f.pays[count] = p
		}
	}
	return nil
}

// payFor 查询某外观连续 count 列的赔率；未配置时取不超过 count 的最高档
func (f *FaceConfig) payFor(count int) (decimal.Decimal, bool) {
	for n := count; n > 0; n-- {
		if p, ok := f.pays[n]; ok {
			return p, true
		}
	}
	return decimal.Zero, false
}
