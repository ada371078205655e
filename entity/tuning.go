package entity

import "github.com/milk9111/gumshoe/component"

// PhysicsTuning is shared by every body.
type PhysicsTuning struct {
	Gravity      float64 `yaml:"gravity"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
}

// DamageTuning drives the shared damage protocol.
type DamageTuning struct {
	Pop            float64 `yaml:"pop"`
	ShakeIntensity float64 `yaml:"shake_intensity"`
	ShakeDuration  float64 `yaml:"shake_duration"`
	DeathShake     float64 `yaml:"death_shake"`
	HitFreeze      float64 `yaml:"hit_freeze"`
}

type PlayerTuning struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Health int     `yaml:"health"`

	MoveSpeed    float64 `yaml:"move_speed"`
	GroundAccel  float64 `yaml:"ground_accel"`
	GroundDecel  float64 `yaml:"ground_decel"`
	AirAccel     float64 `yaml:"air_accel"`
	AirDecel     float64 `yaml:"air_decel"`
	RunThreshold float64 `yaml:"run_threshold"`

	JumpSpeed      float64 `yaml:"jump_speed"`
	LowJumpGravity float64 `yaml:"low_jump_gravity"`
	CoyoteTime     float64 `yaml:"coyote_time"`
	JumpBuffer     float64 `yaml:"jump_buffer"`

	WallSlideSpeed float64 `yaml:"wall_slide_speed"`
	WallJumpX      float64 `yaml:"wall_jump_x"`
	WallJumpY      float64 `yaml:"wall_jump_y"`
	WallStickTime  float64 `yaml:"wall_stick_time"`

	RollSpeed    float64 `yaml:"roll_speed"`
	RollDuration float64 `yaml:"roll_duration"`
	RollCooldown float64 `yaml:"roll_cooldown"`
	RollInvuln   float64 `yaml:"roll_invuln"`

	ClimbDuration   float64 `yaml:"climb_duration"`
	LedgeRegrab     float64 `yaml:"ledge_regrab"`
	DropThroughTime float64 `yaml:"drop_through_time"`

	AttackCooldown float64                 `yaml:"attack_cooldown"`
	Attack         component.AttackProfile `yaml:"attack"`
	HurtTime       float64                 `yaml:"hurt_time"`
	HurtInvuln     float64                 `yaml:"hurt_invuln"`
}

// EnemyTuning covers all three archetypes; each reads only the fields its
// behavior uses.
type EnemyTuning struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Health int     `yaml:"health"`

	PatrolSpeed  float64 `yaml:"patrol_speed"`
	ChaseSpeed   float64 `yaml:"chase_speed"`
	RetreatSpeed float64 `yaml:"retreat_speed"`
	PatrolTime   float64 `yaml:"patrol_time"`
	PatrolJitter float64 `yaml:"patrol_jitter"`

	AggroRange   float64 `yaml:"aggro_range"`
	LoseRange    float64 `yaml:"lose_range"`
	AttackRange  float64 `yaml:"attack_range"`
	RetreatRange float64 `yaml:"retreat_range"`

	AttackCooldown float64                 `yaml:"attack_cooldown"`
	Attack         component.AttackProfile `yaml:"attack"`
	HurtInvuln     float64                 `yaml:"hurt_invuln"`

	BlockChance float64 `yaml:"block_chance"`
	BlockTime   float64 `yaml:"block_time"`
	CastPoint   float64 `yaml:"cast_point"`
}

// Tuning is every number entity behavior reads. Entities look it up through
// the step context, so replacing it affects live entities.
type Tuning struct {
	Physics   PhysicsTuning `yaml:"physics"`
	Damage    DamageTuning  `yaml:"damage"`
	Player    PlayerTuning  `yaml:"player"`
	Patroller EnemyTuning   `yaml:"patroller"`
	Caster    EnemyTuning   `yaml:"caster"`
	Blocker   EnemyTuning   `yaml:"blocker"`
}

// Enemy returns the tuning block for an enemy kind.
func (t *Tuning) Enemy(k Kind) *EnemyTuning {
	switch k {
	case KindCaster:
		return &t.Caster
	case KindBlocker:
		return &t.Blocker
	}
	return &t.Patroller
}

// Attack returns the hitbox profile used by kind k.
func (t *Tuning) Attack(k Kind) component.AttackProfile {
	if k == KindPlayer {
		return t.Player.Attack
	}
	return t.Enemy(k).Attack
}

var defaultTuning = DefaultTuning()

// DefaultTuning returns the built-in values.
func DefaultTuning() *Tuning {
	return &Tuning{
		Physics: PhysicsTuning{Gravity: 1200, MaxFallSpeed: 600},
		Damage: DamageTuning{
			Pop:            160,
			ShakeIntensity: 3,
			ShakeDuration:  0.15,
			DeathShake:     6,
			HitFreeze:      0.06,
		},
		Player: PlayerTuning{
			Width: 12, Height: 24, Health: 5,
			MoveSpeed: 180, RunThreshold: 10,
			GroundAccel: 1400, GroundDecel: 1800, AirAccel: 900, AirDecel: 500,
			JumpSpeed: 420, LowJumpGravity: 2.2, CoyoteTime: 0.1, JumpBuffer: 0.1,
			WallSlideSpeed: 80, WallJumpX: 220, WallJumpY: 380, WallStickTime: 0.12,
			RollSpeed: 300, RollDuration: 0.35, RollCooldown: 0.6, RollInvuln: 0.25,
			ClimbDuration: 0.3, LedgeRegrab: 0.25, DropThroughTime: 0.2,
			AttackCooldown: 0.35,
			Attack: component.AttackProfile{
				Damage: 1, Knockback: 200, Reach: 18, Height: 16, OffsetY: 4,
				WindowStart: 0.3, WindowEnd: 0.7,
			},
			HurtTime:   0.3,
			HurtInvuln: 1.0,
		},
		Patroller: EnemyTuning{
			Width: 14, Height: 20, Health: 3,
			PatrolSpeed: 40, ChaseSpeed: 90, PatrolTime: 2, PatrolJitter: 1,
			AggroRange: 120, LoseRange: 220, AttackRange: 24,
			AttackCooldown: 1.2, HurtInvuln: 0.2,
			Attack: component.AttackProfile{
				Damage: 1, Knockback: 180, Reach: 16, Height: 14, OffsetY: 3,
				WindowStart: 0.4, WindowEnd: 0.7,
			},
		},
		Caster: EnemyTuning{
			Width: 12, Height: 22, Health: 2,
			RetreatSpeed: 60, AggroRange: 200, LoseRange: 260, AttackRange: 160, RetreatRange: 60,
			AttackCooldown: 2.0, HurtInvuln: 0.2, CastPoint: 0.5,
			Attack: component.AttackProfile{
				Damage: 1, Knockback: 150, Reach: 150, Height: 10, OffsetY: 6,
				WindowStart: 0.5, WindowEnd: 0.7,
			},
		},
		Blocker: EnemyTuning{
			Width: 16, Height: 22, Health: 5,
			PatrolSpeed: 30, ChaseSpeed: 60, PatrolTime: 3, PatrolJitter: 1,
			AggroRange: 110, LoseRange: 200, AttackRange: 26,
			AttackCooldown: 1.5, HurtInvuln: 0.2, BlockChance: 0.4, BlockTime: 1.0,
			Attack: component.AttackProfile{
				Damage: 2, Knockback: 220, Reach: 20, Height: 16, OffsetY: 3,
				WindowStart: 0.45, WindowEnd: 0.7,
			},
		},
	}
}

func playerAnimations(t PlayerTuning) component.AnimationSet {
	set := component.DefaultPlayerAnimations()
	if t.RollDuration > 0 {
		def := set[component.AnimRoll]
		def.Duration = t.RollDuration
		set[component.AnimRoll] = def
	}
	if t.ClimbDuration > 0 {
		def := set[component.AnimLedgeClimb]
		def.Duration = t.ClimbDuration
		set[component.AnimLedgeClimb] = def
	}
	return set
}
