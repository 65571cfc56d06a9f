// Package level は合計ポイントからレベルとレベル内ポイントを求める純粋関数群。
// DBやグローバル状態には触れず、閾値は Config として毎回渡す。
package level

import (
	"fmt"

	"ai_learning_tracker/internal/model"
)

// Threshold はレベル名とそのレベルに入るための最小合計ポイント
type Threshold struct {
	Name      string
	MinPoints int64
}

// Config は順序付きのレベル閾値。NewConfig を通したものだけが有効。
// 生成後は変更できないので、読み取り専用のスナップショットとして共有してよい。
type Config struct {
	tiers []Threshold
	index map[string]int
}

// NewConfig は閾値を検証して Config を作る。
// 条件: 1件以上、名前が空でなく重複しない、最下位が0、厳密に単調増加。
func NewConfig(tiers []Threshold) (Config, error) {
	if err := validate(tiers); err != nil {
		return Config{}, err
	}
	c := Config{
		tiers: make([]Threshold, len(tiers)),
		index: make(map[string]int, len(tiers)),
	}
	copy(c.tiers, tiers)
	for i, t := range c.tiers {
		c.index[t.Name] = i
	}
	return c, nil
}

func validate(tiers []Threshold) error {
	if len(tiers) == 0 {
		return fmt.Errorf("%w: no levels defined", model.ErrConfiguration)
	}
	if tiers[0].MinPoints != 0 {
		return fmt.Errorf("%w: lowest level %q must start at 0 points, got %d", model.ErrConfiguration, tiers[0].Name, tiers[0].MinPoints)
	}
	seen := make(map[string]struct{}, len(tiers))
	for i, t := range tiers {
		if t.Name == "" {
			return fmt.Errorf("%w: level at position %d has no name", model.ErrConfiguration, i)
		}
		if _, dup := seen[t.Name]; dup {
			return fmt.Errorf("%w: duplicate level %q", model.ErrConfiguration, t.Name)
		}
		seen[t.Name] = struct{}{}
		if i > 0 && t.MinPoints <= tiers[i-1].MinPoints {
			return fmt.Errorf("%w: thresholds must be strictly increasing (%q=%d after %q=%d)",
				model.ErrConfiguration, t.Name, t.MinPoints, tiers[i-1].Name, tiers[i-1].MinPoints)
		}
	}
	return nil
}

// Validate はゼロ値の Config などを弾く
func (c Config) Validate() error {
	if len(c.tiers) == 0 || len(c.index) != len(c.tiers) {
		return fmt.Errorf("%w: configuration not initialised", model.ErrConfiguration)
	}
	return validate(c.tiers)
}

// Tiers は閾値のコピーを返す
func (c Config) Tiers() []Threshold {
	out := make([]Threshold, len(c.tiers))
	copy(out, c.tiers)
	return out
}

// Lowest は最下位レベル名 (新規ユーザーのレベル)
func (c Config) Lowest() string {
	if len(c.tiers) == 0 {
		return ""
	}
	return c.tiers[0].Name
}

// Rank はレベルの順位 (0が最下位)
func (c Config) Rank(name string) (int, bool) {
	i, ok := c.index[name]
	return i, ok
}

// Compare は a<b なら負、a==b なら0、a>b なら正を返す
func (c Config) Compare(a, b string) (int, error) {
	ra, ok := c.index[a]
	if !ok {
		return 0, fmt.Errorf("%w: unknown level %q", model.ErrInvalidInput, a)
	}
	rb, ok := c.index[b]
	if !ok {
		return 0, fmt.Errorf("%w: unknown level %q", model.ErrInvalidInput, b)
	}
	return ra - rb, nil
}

// Next は name の一つ上のレベル。最上位なら false。
func (c Config) Next(name string) (Threshold, bool) {
	i, ok := c.index[name]
	if !ok || i+1 >= len(c.tiers) {
		return Threshold{}, false
	}
	return c.tiers[i+1], true
}

// MinPointsFor は name の閾値
func (c Config) MinPointsFor(name string) (int64, bool) {
	i, ok := c.index[name]
	if !ok {
		return 0, false
	}
	return c.tiers[i].MinPoints, true
}

// LevelForPoints は閾値が total 以下である最上位のレベルを返す。
// total がちょうど閾値と等しい場合はそのレベルに入っている。
func LevelForPoints(total int64, cfg Config) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	if total < 0 {
		return "", fmt.Errorf("%w: total points cannot be negative (%d)", model.ErrInvalidInput, total)
	}
	name := cfg.tiers[0].Name
	for _, t := range cfg.tiers[1:] {
		if t.MinPoints > total {
			break
		}
		name = t.Name
	}
	return name, nil
}

// LevelPointsFor はレベルに入ってからのポイント (total - 閾値) を返す。
// 閾値をまたいだとき、超過分がそのまま新しいレベルのポイントになる。
func LevelPointsFor(total int64, name string, cfg Config) (int64, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	minPoints, ok := cfg.MinPointsFor(name)
	if !ok {
		return 0, fmt.Errorf("%w: unknown level %q", model.ErrInvalidInput, name)
	}
	if total < minPoints {
		return 0, fmt.Errorf("%w: %d points do not reach level %q (%d)", model.ErrInvalidInput, total, name, minPoints)
	}
	return total - minPoints, nil
}

// Progress は合計ポイントに対するレベルの進み具合
type Progress struct {
	Level             string
	LevelPoints       int64
	NextLevel         string
	PointsToNextLevel int64
	IsTopLevel        bool
}

// ProgressFor は合計ポイントから現在レベルと次のレベルまでの残りを求める
func ProgressFor(total int64, cfg Config) (Progress, error) {
	name, err := LevelForPoints(total, cfg)
	if err != nil {
		return Progress{}, err
	}
	lp, err := LevelPointsFor(total, name, cfg)
	if err != nil {
		return Progress{}, err
	}
	p := Progress{Level: name, LevelPoints: lp}
	next, ok := cfg.Next(name)
	if !ok {
		p.IsTopLevel = true
		return p, nil
	}
	p.NextLevel = next.Name
	p.PointsToNextLevel = next.MinPoints - total
	return p, nil
}
