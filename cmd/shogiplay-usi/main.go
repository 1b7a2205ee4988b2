package main

import (
	"flag"
	"log"
	"os"

	"github.com/hailam/shogiplay/internal/board"
	"github.com/hailam/shogiplay/internal/usi"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	debug      = flag.Bool("debug", false, "check position invariants after every move")
)

func main() {
	flag.Parse()

	board.DebugMoveValidation = *debug

	protocol := usi.New(os.Stdin, os.Stdout)

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		if err := protocol.StartProfile(profilePath); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	if err := protocol.Run(); err != nil {
		log.Fatal(err)
	}
}
