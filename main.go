package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "draw hitboxes, triggers and entity state")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "alley", "level id in levels/ (basename, .json optional)")
	seed := flag.Uint64("seed", 1, "seed for AI and camera shake randomness")
	watch := flag.Bool("watch", false, "reload prefabs/*.yaml and prefabs/scripts/*.tengo from disk on change")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(screenWidth*4, screenHeight*4)
	ebiten.SetWindowTitle("gumshoe")

	game, err := NewGame(GameOptions{
		Level: *levelName,
		Seed:  *seed,
		Debug: *debug,
		Watch: *watch,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
