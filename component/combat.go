package component

// Faction identifies teams for friendly-fire checks.
type Faction int

const (
	FactionNeutral Faction = iota
	FactionPlayer
	FactionEnemy
)

func (f Faction) String() string {
	switch f {
	case FactionPlayer:
		return "player"
	case FactionEnemy:
		return "enemy"
	}
	return "neutral"
}

// AttackProfile describes a forward hitbox active during the middle of an
// attack animation. Offsets are relative to the attacker's leading edge.
type AttackProfile struct {
	Damage      int     `yaml:"damage"`
	Knockback   float64 `yaml:"knockback"`
	Reach       float64 `yaml:"reach"`
	Height      float64 `yaml:"height"`
	OffsetY     float64 `yaml:"offset_y"`
	WindowStart float64 `yaml:"window_start"`
	WindowEnd   float64 `yaml:"window_end"`
}

// Active reports whether animation progress lies inside the hit window.
func (p AttackProfile) Active(progress float64) bool {
	return progress >= p.WindowStart && progress <= p.WindowEnd
}
