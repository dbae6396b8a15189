package store

// migration holds a single SQLite schema migration with its target version.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of SQLite schema migrations. The Postgres
// schema lives in migrations/migrations.sql and is applied by cmd/migrate.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	name          TEXT NOT NULL DEFAULT '',
	created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS todo_items (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL DEFAULT '',
	body       TEXT NOT NULL DEFAULT '',
	username   TEXT NOT NULL REFERENCES users(username),
	completed  INTEGER NOT NULL DEFAULT 0 CHECK(completed IN (0, 1)),
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_todo_items_username ON todo_items(username);
CREATE INDEX IF NOT EXISTS idx_todo_items_created_at ON todo_items(created_at);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
