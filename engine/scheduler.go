package engine

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/milk9111/gumshoe/common"
)

// ErrHalted wraps the failure that stopped the simulation.
var ErrHalted = errors.New("simulation halted")

// StepFunc advances the simulation by one fixed step.
type StepFunc func(dt float64) error

// Scheduler turns variable frame times into fixed simulation steps. The host
// calls Frame once per rendered frame and draws afterwards using Alpha.
type Scheduler struct {
	cfg     SchedulerConfig
	step    StepFunc
	acc     float64
	freeze  float64
	running bool
	err     error
}

func NewScheduler(cfg SchedulerConfig, step StepFunc) *Scheduler {
	d := DefaultSchedulerConfig()
	if cfg.Step <= 0 {
		cfg.Step = d.Step
	}
	if cfg.MaxFrame <= 0 {
		cfg.MaxFrame = d.MaxFrame
	}
	return &Scheduler{cfg: cfg, step: step}
}

func (s *Scheduler) SetConfig(cfg SchedulerConfig) {
	if cfg.Step > 0 {
		s.cfg.Step = cfg.Step
	}
	if cfg.MaxFrame > 0 {
		s.cfg.MaxFrame = cfg.MaxFrame
	}
}

func (s *Scheduler) Step() float64 { return s.cfg.Step }

// Start begins stepping. Calling it while running does nothing.
func (s *Scheduler) Start() {
	if s.running || s.err != nil {
		return
	}
	s.running = true
	s.acc = 0
}

// Stop drops any buffered time. Calling it while stopped does nothing.
func (s *Scheduler) Stop() {
	if !s.running {
		return
	}
	s.running = false
	s.acc = 0
}

func (s *Scheduler) Running() bool { return s.running }

// Reset clears a halt, buffered time and any freeze. The running flag is
// kept.
func (s *Scheduler) Reset() {
	s.err = nil
	s.acc = 0
	s.freeze = 0
}

// Err returns the failure that halted the scheduler, if any.
func (s *Scheduler) Err() error { return s.err }

// Freeze suspends steps for d seconds. A shorter freeze never cuts a longer
// one short.
func (s *Scheduler) Freeze(d float64) {
	s.freeze = math.Max(s.freeze, d)
}

func (s *Scheduler) Frozen() bool { return s.freeze > 0 }

// Frame accumulates elapsed seconds and runs as many whole steps as fit. It
// returns the number of steps executed. Frozen steps consume time without
// calling the step function.
func (s *Scheduler) Frame(elapsed float64) int {
	if !s.running || s.err != nil {
		return 0
	}
	s.acc += common.Clamp(elapsed, 0, s.cfg.MaxFrame)

	n := 0
	for s.acc+common.TimeEpsilon >= s.cfg.Step {
		s.acc = math.Max(s.acc-s.cfg.Step, 0)
		if s.freeze > 0 {
			s.freeze = common.Tick(s.freeze, s.cfg.Step)
			continue
		}
		if err := s.run(); err != nil {
			s.err = err
			s.running = false
			s.acc = 0
			log.Printf("scheduler: %v", err)
			return n
		}
		n++
	}
	return n
}

func (s *Scheduler) run() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrHalted, r)
		}
	}()
	if err := s.step(s.cfg.Step); err != nil {
		return fmt.Errorf("%w: %w", ErrHalted, err)
	}
	return nil
}

// Alpha is the fraction of a step left in the buffer, for interpolation.
func (s *Scheduler) Alpha() float64 {
	return common.Clamp(s.acc/s.cfg.Step, 0, 1)
}
