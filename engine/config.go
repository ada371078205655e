package engine

import (
	"github.com/milk9111/gumshoe/entity"
	"github.com/milk9111/gumshoe/system"
)

// SchedulerConfig sets the fixed step and the longest frame that is
// simulated in one go. Longer frames are clamped.
type SchedulerConfig struct {
	Step     float64 `yaml:"step"`
	MaxFrame float64 `yaml:"max_frame"`
}

func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{Step: 1.0 / 60.0, MaxFrame: 0.25}
}

// Config is everything an Engine can be tuned with.
type Config struct {
	Scheduler SchedulerConfig     `yaml:"scheduler"`
	Camera    system.CameraConfig `yaml:"camera"`
	Traps     system.TrapConfig   `yaml:"traps"`
	Tuning    *entity.Tuning      `yaml:"-"`
}

func DefaultConfig() Config {
	return Config{
		Scheduler: DefaultSchedulerConfig(),
		Camera:    system.DefaultCameraConfig(),
		Traps:     system.DefaultTrapConfig(),
		Tuning:    entity.DefaultTuning(),
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Scheduler.Step <= 0 {
		c.Scheduler.Step = d.Scheduler.Step
	}
	if c.Scheduler.MaxFrame <= 0 {
		c.Scheduler.MaxFrame = d.Scheduler.MaxFrame
	}
	if c.Camera.ViewWidth <= 0 || c.Camera.ViewHeight <= 0 {
		c.Camera = d.Camera
	}
	if c.Tuning == nil {
		c.Tuning = d.Tuning
	}
	return c
}
