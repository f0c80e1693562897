package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/appengine-ltd/vegan-simulator/internal/config"
	"github.com/appengine-ltd/vegan-simulator/internal/console"
	"github.com/appengine-ltd/vegan-simulator/internal/snapshot"
)

// version, commit, date are injected at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		showVersion bool
		configPath  string
		envPath     string
		years       int
		preset      string
	)

	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.StringVar(&configPath, "config", "", "path to a YAML config file")
	flag.StringVar(&envPath, "env", ".env", "path to a dotenv file")
	flag.IntVar(&years, "years", 0, "simulate this many years without prompting and print the result")
	flag.StringVar(&preset, "preset", "", "apply a diet preset before starting")
	flag.Parse()

	if showVersion {
		fmt.Printf("Vegan Simulator %s (%s) %s\n", version, commit, date)
		return
	}

	if err := config.LoadDotEnv(envPath); err != nil {
		log.Fatalf("load %s: %v", envPath, err)
	}
	cfg, err := config.Resolve(configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	session, err := console.NewSession(cfg, snapshot.NewStore(cfg.Snapshots.Dir))
	if err != nil {
		log.Fatalf("new session: %v", err)
	}
	if preset != "" {
		res := session.Execute("preset " + preset)
		fmt.Println(res.Message)
	}

	if years > 0 {
		if err := session.Headless(os.Stdout, years); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := session.Run(os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
