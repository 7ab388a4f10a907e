package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/solohouse/solo-os/internal/builtin"
	"github.com/solohouse/solo-os/internal/command"
	"github.com/solohouse/solo-os/internal/config"
	"github.com/solohouse/solo-os/internal/db"
	"github.com/solohouse/solo-os/internal/guestbook"
	"github.com/solohouse/solo-os/internal/post"
	"github.com/solohouse/solo-os/internal/scripting"
	"github.com/solohouse/solo-os/internal/ui"
	"github.com/solohouse/solo-os/internal/user"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := os.MkdirAll(cfg.Paths.Data, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	database, err := db.Open(cfg.Paths.Database)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	userRepo := user.NewRepo(database.DB)
	postRepo := post.NewRepo(database.DB)
	guestRepo := guestbook.NewRepo(database.DB)
	scriptRepo := scripting.NewRepo(database.DB)

	if _, err := userRepo.EnsureAdmin(cfg.Admin.Username, cfg.Admin.Password); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	registry := command.NewRegistry()
	engine := scripting.NewEngine(cfg.Scripting.Timeout())
	loader := scripting.NewLoader(engine, registry)

	deps := &builtin.Deps{
		Users:     userRepo,
		Posts:     postRepo,
		Guestbook: guestRepo,
		Scripts:   scriptRepo,
		Engine:    engine,
		Loader:    loader,
		DB:        database,
		Version:   version,
		StartedAt: time.Now(),
	}

	// A duplicate built-in name is a configuration bug; refuse to start
	// with an inconsistent registry.
	if err := builtin.RegisterAll(registry, deps); err != nil {
		log.Fatalf("Failed to register built-in commands: %v", err)
	}
	log.Printf("Registered %d built-in commands", registry.Len())

	// Custom commands load best-effort: one broken record must not keep
	// the board from starting.
	records, err := scriptRepo.All()
	if err != nil {
		log.Printf("Failed to read custom commands: %v", err)
	} else {
		loader.LoadAll(records)
	}

	settings, err := database.GetBoardSettings()
	if err != nil {
		log.Printf("Failed to load board settings: %v", err)
	}

	dispatcher := command.NewDispatcher(registry)
	sess := command.NewSession()

	shell := ui.NewShell(dispatcher, sess, settings)
	if err := shell.Run(); err != nil {
		log.Fatalf("Shell error: %v", err)
	}
}
