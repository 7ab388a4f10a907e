package db

type migration struct {
	name string
	sql  string
}

var migrations = []migration{
	{
		name: "create users table",
		sql: `
			CREATE TABLE IF NOT EXISTS users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				username TEXT UNIQUE NOT NULL COLLATE NOCASE,
				password_hash TEXT NOT NULL,
				is_admin BOOLEAN DEFAULT 0,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				last_login DATETIME
			)
		`,
	},
	{
		name: "create profiles table",
		sql: `
			CREATE TABLE IF NOT EXISTS profiles (
				user_id INTEGER PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
				bio TEXT DEFAULT '',
				contact TEXT DEFAULT '',
				status TEXT DEFAULT ''
			)
		`,
	},
	{
		name: "create posts table",
		sql: `
			CREATE TABLE IF NOT EXISTS posts (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id INTEGER REFERENCES users(id) ON DELETE SET NULL,
				title TEXT NOT NULL,
				content TEXT NOT NULL,
				type TEXT DEFAULT 'post',
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_posts_type ON posts(type, created_at);
		`,
	},
	{
		name: "create guestbook table",
		sql: `
			CREATE TABLE IF NOT EXISTS guestbook (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				message TEXT NOT NULL,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)
		`,
	},
	{
		name: "create weekly posts table",
		sql: `
			CREATE TABLE IF NOT EXISTS weekly_posts (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				week_number INTEGER NOT NULL,
				last_week TEXT NOT NULL,
				next_week TEXT NOT NULL,
				wins TEXT DEFAULT '',
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				UNIQUE(user_id, week_number)
			)
		`,
	},
	{
		name: "create custom commands table",
		sql: `
			CREATE TABLE IF NOT EXISTS commands (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				creator_id INTEGER REFERENCES users(id) ON DELETE SET NULL,
				name TEXT UNIQUE NOT NULL,
				description TEXT NOT NULL,
				implementation TEXT NOT NULL,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)
		`,
	},
	{
		name: "create board settings row",
		sql: `
			CREATE TABLE IF NOT EXISTS board_settings (
				id INTEGER PRIMARY KEY CHECK (id = 1),
				name TEXT NOT NULL,
				tagline TEXT DEFAULT '',
				motd TEXT DEFAULT ''
			);
			INSERT OR IGNORE INTO board_settings (id, name, tagline, motd) VALUES
				(1, 'SOLO-OS', 'Terminal BBS for the Solo house', '')
		`,
	},
}
