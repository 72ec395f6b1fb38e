package main

import (
	"bufio"
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/automoto/freezetag/config"
	"github.com/automoto/freezetag/server/core"
	"github.com/automoto/freezetag/shared/protocol"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML server config file")
	port := flag.Uint("port", 0, "Server port (overrides config)")
	tickRate := flag.Int("tickrate", 0, "Server tick rate in updates per second (overrides config)")
	name := flag.String("name", "", "Server display name (overrides config)")
	assets := flag.String("assets", "", "Assets directory containing levels/ (overrides config)")
	level := flag.String("level", "", "Level to load (overrides config)")
	version := flag.String("version", "", "Required client version (empty = accept any)")
	master := flag.String("master", "", "Master server URL to register with (empty = unlisted)")
	address := flag.String("address", "", "Public address announced to the master server")
	region := flag.String("region", "", "Region announced to the master server")
	noPersist := flag.Bool("no-persist", false, "Do not load or save cvar overrides")
	flag.Parse()

	if *configPath != "" {
		if err := config.LoadFile(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	var store *config.Store
	if !*noPersist {
		s, err := config.OpenStore("freezetag-server")
		if err != nil {
			log.Printf("[config] persistent settings unavailable: %v", err)
		} else {
			store = s
			if err := store.Load(); err != nil {
				log.Printf("[config] %v", err)
			}
		}
	}

	// Flags win over the config file and saved settings
	if *port != 0 {
		config.Server.Port = *port
	}
	if *tickRate > 0 {
		config.Server.TickRate = *tickRate
	}
	if *name != "" {
		config.Server.Name = *name
	}
	if *assets != "" {
		config.Server.AssetsDir = *assets
	}
	if *level != "" {
		config.Server.Level = *level
	}
	if *version != "" {
		config.Server.Version = *version
	}

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register components: %v", err)
	}

	lvl, err := core.LoadServerLevel(config.Server.AssetsDir, config.Server.Level)
	if err != nil {
		log.Fatalf("Failed to load level: %v", err)
	}

	server := core.NewServer(lvl, store)

	var reg *core.Registration
	if *master != "" {
		reg = core.NewRegistration(*master, *address, *region, server)
		reg.Start(context.Background())
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down server...")
		if reg != nil {
			reg.Stop()
		}
		server.Stop()
		os.Exit(0)
	}()

	// Operator console on stdin
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			server.Exec(scanner.Text())
		}
	}()

	log.Printf("Starting freeze tag server %q on port %d (level: %s, tick rate: %d/s, version: %s)",
		config.Server.Name, config.Server.Port, config.Server.Level, config.Server.TickRate, config.Server.Version)
	if err := server.Start(config.Server.Port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
