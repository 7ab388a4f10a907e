package app

import (
	"fmt"
	"os"
	"time"

	"github.com/solohouse/solo-os/internal/config"
	"github.com/solohouse/solo-os/internal/db"
	"github.com/solohouse/solo-os/internal/scripting"
	"github.com/solohouse/solo-os/internal/user"
)

type App struct {
	ConfigPath string
	Config     *config.Config
	DBPath     string
	DB         *db.DB

	Users   *user.Repo
	Scripts *scripting.Repo

	BusyTimeout time.Duration
}

func New(configPath string) (*App, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	if err := os.MkdirAll(cfg.Paths.Data, 0755); err != nil {
		return nil, nil, fmt.Errorf("create data directory: %w", err)
	}

	database, err := db.Open(cfg.Paths.Database)
	if err != nil {
		return nil, nil, err
	}

	a := &App{
		ConfigPath:  configPath,
		Config:      cfg,
		DBPath:      cfg.Paths.Database,
		DB:          database,
		Users:       user.NewRepo(database.DB),
		Scripts:     scripting.NewRepo(database.DB),
		BusyTimeout: 5 * time.Second,
	}

	// Best-effort online use: reduce SQLITE_BUSY failures.
	_, _ = database.Exec("PRAGMA busy_timeout = 5000")

	cleanup := func() {
		_ = database.Close()
	}

	return a, cleanup, nil
}
