package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Demon-Corridor/internal/game"
	"github.com/Garsondee/Demon-Corridor/internal/sim"
)

func main() {
	var configPath string
	var width, height int
	flag.StringVar(&configPath, "config", "", "optional YAML tuning file")
	flag.IntVar(&width, "width", 800, "initial window width")
	flag.IntVar(&height, "height", 600, "initial window height")
	flag.Parse()

	cfg := sim.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = sim.LoadConfig(configPath); err != nil {
			log.Fatal(err)
		}
	}

	g, err := game.New(cfg, sim.DefaultLevel)
	if err != nil {
		log.Fatal(err)
	}
	ebiten.SetWindowTitle("Demon Corridor")
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
