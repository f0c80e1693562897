package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/appengine-ltd/vegan-simulator/internal/api"
	"github.com/appengine-ltd/vegan-simulator/internal/config"
	"github.com/appengine-ltd/vegan-simulator/internal/snapshot"
)

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
		addr        string
	)

	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.StringVar(&configPath, "config", "", "path to a YAML config file")
	flag.StringVar(&envPath, "env", ".env", "path to a dotenv file")
	flag.StringVar(&addr, "addr", "", "listen address, overrides config")
	flag.Parse()

	if showVersion {
		fmt.Printf("Vegan Simulator server %s (%s) %s\n", version, commit, date)
		return
	}

	if err := config.LoadDotEnv(envPath); err != nil {
		log.Fatalf("load %s: %v", envPath, err)
	}
	cfg, err := config.Resolve(configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	gin.SetMode(cfg.Server.GinMode)

	srv, err := api.NewServer(cfg, snapshot.NewStore(cfg.Snapshots.Dir))
	if err != nil {
		log.Fatalf("new server: %v", err)
	}

	log.Printf("listening on %s (max year %d, snapshots in %s)", cfg.Server.Addr, cfg.Simulation.MaxYear, cfg.Snapshots.Dir)
	if err := srv.Router().Run(cfg.Server.Addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
