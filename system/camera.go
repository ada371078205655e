package system

import (
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gumshoe/common"
	"github.com/milk9111/gumshoe/entity"
)

type CameraConfig struct {
	ViewWidth    float64 `yaml:"view_width"`
	ViewHeight   float64 `yaml:"view_height"`
	Smoothing    float64 `yaml:"smoothing"` // per second
	LookAhead    float64 `yaml:"look_ahead"`
	VerticalBias float64 `yaml:"vertical_bias"`
}

func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		ViewWidth:    320,
		ViewHeight:   180,
		Smoothing:    6,
		LookAhead:    32,
		VerticalBias: -16,
	}
}

// Camera tracks the top-left corner of the view in world space. Pos always
// stays inside the level; the shake offset is applied on top of it.
type Camera struct {
	Pos    cp.Vector
	Target cp.Vector

	cfg    CameraConfig
	worldW float64
	worldH float64

	shakeIntensity float64
	shakeTime      float64
	shakeDuration  float64
	offset         cp.Vector
	rng            *rand.Rand
}

// NewCamera creates a camera. rng drives shake jitter; nil disables jitter
// randomness.
func NewCamera(cfg CameraConfig, rng *rand.Rand) *Camera {
	return &Camera{cfg: cfg, rng: rng}
}

func (c *Camera) SetConfig(cfg CameraConfig) {
	c.cfg = cfg
}

// SetBounds sets the level size in pixels.
func (c *Camera) SetBounds(w, h float64) {
	c.worldW = w
	c.worldH = h
	c.Pos = c.clamp(c.Pos)
	c.Target = c.clamp(c.Target)
}

func (c *Camera) ViewSize() (w, h float64) {
	return c.cfg.ViewWidth, c.cfg.ViewHeight
}

func (c *Camera) clamp(p cp.Vector) cp.Vector {
	return cp.Vector{
		X: common.Clamp(p.X, 0, c.worldW-c.cfg.ViewWidth),
		Y: common.Clamp(p.Y, 0, c.worldH-c.cfg.ViewHeight),
	}
}

func (c *Camera) targetFor(v entity.View) cp.Vector {
	return c.clamp(cp.Vector{
		X: v.Pos.X + v.Facing*c.cfg.LookAhead - c.cfg.ViewWidth/2,
		Y: v.Pos.Y + c.cfg.VerticalBias - c.cfg.ViewHeight/2,
	})
}

// Follow eases toward v with a frame-rate independent factor.
func (c *Camera) Follow(v entity.View, dt float64) {
	c.Target = c.targetFor(v)
	k := common.SmoothFactor(c.cfg.Smoothing, dt)
	c.Pos = c.clamp(c.Pos.Lerp(c.Target, k))
}

// SnapTo places the camera on v without smoothing.
func (c *Camera) SnapTo(v entity.View) {
	c.Target = c.targetFor(v)
	c.Pos = c.Target
}

// Shake starts a shake. A weaker or shorter request never reduces one
// already running.
func (c *Camera) Shake(intensity, duration float64) {
	if intensity > c.shakeIntensity {
		c.shakeIntensity = intensity
	}
	if duration > c.shakeTime {
		c.shakeTime = duration
		c.shakeDuration = duration
	}
}

// Update decays the shake and rolls a new jitter offset.
func (c *Camera) Update(dt float64) {
	c.shakeTime = common.Tick(c.shakeTime, dt)
	if c.shakeTime <= 0 {
		c.shakeIntensity = 0
		c.shakeDuration = 0
		c.offset = cp.Vector{}
		return
	}
	mag := c.shakeIntensity * c.shakeTime / c.shakeDuration
	c.offset = cp.Vector{X: (c.unit()*2 - 1) * mag, Y: (c.unit()*2 - 1) * mag}
}

func (c *Camera) unit() float64 {
	if c.rng == nil {
		return 1
	}
	return c.rng.Float64()
}

// Shaking reports whether a shake is running.
func (c *Camera) Shaking() bool { return c.shakeTime > 0 }

// Offset is the current shake jitter.
func (c *Camera) Offset() cp.Vector { return c.offset }

// View returns the render position: Pos plus shake.
func (c *Camera) View() cp.Vector { return c.Pos.Add(c.offset) }

// Parallax scales the camera position for a background layer at depth, where
// 0 is fixed to the screen and 1 moves with the world.
func (c *Camera) Parallax(depth float64) cp.Vector {
	return c.View().Mult(depth)
}
