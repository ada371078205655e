// Command levelcheck loads levels headlessly, compiles their trigger scripts
// and runs the simulation for a while with the player walking right. It exits
// non-zero if any level fails to load or halts.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/milk9111/gumshoe/engine"
	"github.com/milk9111/gumshoe/input"
	"github.com/milk9111/gumshoe/levels"
	"github.com/milk9111/gumshoe/prefabs"
	"github.com/milk9111/gumshoe/system"
)

func main() {
	var (
		levelFlag = flag.String("level", "", "level id to check; empty checks every level")
		seconds   = flag.Float64("seconds", 20, "simulated seconds per level")
		seed      = flag.Uint64("seed", 1, "simulation seed")
		idle      = flag.Bool("idle", false, "leave the player standing instead of walking right")
	)
	flag.Parse()

	ids := levels.List()
	if *levelFlag != "" {
		ids = []string{*levelFlag}
	}

	cfg, err := prefabs.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	failed := 0
	if err := compileScripts(); err != nil {
		log.Printf("FAIL scripts: %v", err)
		failed++
	}
	for _, id := range ids {
		if err := check(id, cfg, *seed, *seconds, !*idle); err != nil {
			log.Printf("FAIL %s: %v", id, err)
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// compileScripts compiles every embedded script, including ones no level
// references yet.
func compileScripts() error {
	var defs []system.TriggerDef
	for _, name := range prefabs.Scripts() {
		defs = append(defs, system.TriggerDef{ID: name, Script: name})
	}
	ts, err := system.CompileTriggers(defs, prefabs.LoadScript)
	if err != nil {
		return err
	}
	log.Printf("ok   scripts: %d compiled", ts.Len())
	return nil
}

func check(id string, cfg engine.Config, seed uint64, seconds float64, walk bool) error {
	e := engine.New(engine.Options{
		Config:  cfg,
		Seed:    seed,
		Scripts: prefabs.LoadScript,
	})
	if err := e.LoadLevel(id); err != nil {
		return err
	}
	e.Start()
	if walk {
		e.Input().KeyDown(input.ActionRight)
	}

	step := cfg.Scheduler.Step
	steps := 0
	for t := 0.0; t < seconds; t += step {
		steps += e.Frame(step)
		if e.Status() != engine.StatusRunning {
			break
		}
	}

	if err := e.Err(); err != nil {
		return err
	}
	views := e.Views()
	hp := 0
	if len(views) > 0 {
		hp = views[0].Health
	}
	log.Printf("ok   %s: %s after %d steps, hp %d, %d actors, clues %v",
		id, e.Status(), steps, hp, len(views), e.Journal().Clues())
	return nil
}
