package main

import (
	"flag"
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Demon-Corridor/internal/sim"
	"github.com/Garsondee/Demon-Corridor/internal/termview"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "optional YAML tuning file")
	flag.Parse()

	cfg := sim.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = sim.LoadConfig(configPath); err != nil {
			log.Fatal(err)
		}
	}
	s, err := sim.NewSim(cfg, sim.DefaultLevel)
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()

	termview.New(screen, s).Run()
}
