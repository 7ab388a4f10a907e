package db

import (
	"fmt"
)

// BoardSettings holds the board identity stored in the database.
type BoardSettings struct {
	Name    string
	Tagline string
	MOTD    string
}

// GetBoardSettings retrieves the board settings row.
func (db *DB) GetBoardSettings() (*BoardSettings, error) {
	var settings BoardSettings
	err := db.QueryRow("SELECT name, tagline, motd FROM board_settings WHERE id = 1").Scan(
		&settings.Name,
		&settings.Tagline,
		&settings.MOTD,
	)
	if err != nil {
		return nil, fmt.Errorf("load board settings: %w", err)
	}
	return &settings, nil
}

// UpdateBoardSettings updates the board settings row.
func (db *DB) UpdateBoardSettings(settings *BoardSettings) error {
	_, err := db.Exec(
		"UPDATE board_settings SET name = ?, tagline = ?, motd = ? WHERE id = 1",
		settings.Name,
		settings.Tagline,
		settings.MOTD,
	)
	if err != nil {
		return fmt.Errorf("update board settings: %w", err)
	}
	return nil
}
