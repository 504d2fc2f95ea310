package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	"github.com/Garsondee/Demon-Corridor/internal/sim"
)

var scenarios = map[string]func(run, runs int) []sim.SimOption{
	// turret: the auto-aim bot holds the spawn and sweeps for targets.
	"turret": func(run, runs int) []sim.SimOption {
		return []sim.SimOption{
			sim.WithHeading(startHeading(run, runs)),
			sim.WithPolicy(sim.AutoAim{Sweep: true}.Decide),
		}
	},
	// idle: nobody touches the controls; measures how long the demons take.
	"idle": func(run, runs int) []sim.SimOption {
		return []sim.SimOption{sim.WithHeading(startHeading(run, runs))}
	},
}

// startHeading spreads the runs' initial view angles evenly around the circle.
func startHeading(run, runs int) float64 {
	if runs <= 1 {
		return 0
	}
	return 2 * math.Pi * float64(run) / float64(runs)
}

type aggregate struct {
	runs       int
	cleared    int
	died       int
	clearTicks []int
	accuracy   float64 // mean over runs that fired at least once
	damage     float64 // mean melee damage taken
}

func verdict(r sim.RunReport) string {
	switch {
	case r.ClearTick >= 0:
		return "cleared"
	case !r.Survived():
		return "died"
	default:
		return "timeout"
	}
}

func summarize(reports []sim.RunReport) aggregate {
	a := aggregate{runs: len(reports)}
	fired := 0
	for _, r := range reports {
		switch verdict(r) {
		case "cleared":
			a.cleared++
			a.clearTicks = append(a.clearTicks, r.ClearTick)
		case "died":
			a.died++
		}
		if r.ShotsFired > 0 {
			a.accuracy += r.Accuracy()
			fired++
		}
		a.damage += r.DamageTaken
	}
	if fired > 0 {
		a.accuracy /= float64(fired)
	}
	if a.runs > 0 {
		a.damage /= float64(a.runs)
	}
	return a
}

func meanInt(xs []int) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0
	for _, x := range xs {
		sum += x
	}
	return float64(sum) / float64(len(xs))
}

func runScenario(name string, cfg sim.Config, run, runs, ticks int, dt float64, verbose bool) (sim.RunReport, *sim.TestSim) {
	opts := []sim.SimOption{sim.WithConfig(cfg), sim.WithDT(dt), sim.WithVerbose(verbose)}
	opts = append(opts, scenarios[name](run, runs)...)
	ts := sim.NewTestSim(opts...)
	ts.RunUntil(func(ts *sim.TestSim) bool {
		return len(ts.Enemies) == 0 || !ts.Player.Alive()
	}, ticks)
	return sim.BuildRunReport(ts), ts
}

func main() {
	var runs int
	var ticks int
	var dt float64
	var scenario string
	var configPath string
	var parallel bool
	var verbose bool

	flag.IntVar(&runs, "runs", 4, "number of headless runs (start heading is spread across runs)")
	flag.IntVar(&ticks, "ticks", 3600, "maximum ticks per run")
	flag.Float64Var(&dt, "dt", 1.0/60, "seconds per tick (clamped by max_delta)")
	flag.StringVar(&scenario, "scenario", "turret", "scenario name (turret, idle)")
	flag.StringVar(&configPath, "config", "", "optional YAML tuning file")
	flag.BoolVar(&parallel, "parallel", false, "cast ray columns on an errgroup")
	flag.BoolVar(&verbose, "verbose", false, "print the full event log of each run")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if _, ok := scenarios[scenario]; !ok {
		fmt.Printf("error: unsupported scenario %q (supported: turret, idle)\n", scenario)
		return
	}

	cfg := sim.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = sim.LoadConfig(configPath); err != nil {
			log.Fatal(err)
		}
	}
	cfg.ParallelColumns = cfg.ParallelColumns || parallel

	fmt.Printf("=== Headless Corridor Report ===\n")
	fmt.Printf("scenario=%s runs=%d ticks=%d dt=%.4f parallel=%v\n\n", scenario, runs, ticks, dt, cfg.ParallelColumns)

	reports := make([]sim.RunReport, 0, runs)
	for i := 0; i < runs; i++ {
		r, ts := runScenario(scenario, cfg, i, runs, ticks, dt, verbose)
		reports = append(reports, r)
		fmt.Printf("run %d heading=%.2f -> %s\n", i+1, startHeading(i, runs), verdict(r))
		fmt.Print(r.Format())
		if verbose {
			fmt.Print(ts.SimLog.Format())
		}
		fmt.Println()
	}

	a := summarize(reports)
	fmt.Printf("=== Aggregate ===\n")
	fmt.Printf("cleared=%d/%d died=%d mean_clear_tick=%.1f mean_accuracy=%.0f%% mean_damage=%.1f\n",
		a.cleared, a.runs, a.died, meanInt(a.clearTicks), a.accuracy*100, a.damage)
}
