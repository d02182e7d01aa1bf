package sqlite

const schema = `
CREATE TABLE IF NOT EXISTS locales (
	code     TEXT PRIMARY KEY,
	name     TEXT NOT NULL DEFAULT '',
	fallback TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS formats (
	locale   TEXT NOT NULL REFERENCES locales(code) ON DELETE CASCADE,
	key      TEXT NOT NULL,
	position INTEGER NOT NULL,
	template TEXT NOT NULL,
	PRIMARY KEY (locale, key, position)
);

CREATE TABLE IF NOT EXISTS pools (
	locale   TEXT NOT NULL REFERENCES locales(code) ON DELETE CASCADE,
	key      TEXT NOT NULL,
	position INTEGER NOT NULL,
	value    TEXT NOT NULL,
	weight   REAL,
	PRIMARY KEY (locale, key, position)
);

-- every declared key, so entries without rows survive a round trip
CREATE TABLE IF NOT EXISTS entry_keys (
	locale TEXT NOT NULL REFERENCES locales(code) ON DELETE CASCADE,
	kind   TEXT NOT NULL CHECK (kind IN ('format', 'pool')),
	key    TEXT NOT NULL,
	PRIMARY KEY (locale, kind, key)
);
`
