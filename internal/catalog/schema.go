package catalog

// Schema v1 - sounds catalog, settings singleton and the FTS5 shadow table.
//
// The shadow is an external-content mirror of sounds(name, tags) and is kept
// in lockstep by the three triggers below: every insert, update and delete on
// sounds fires inside the same transaction as the shadow maintenance, so the
// two tables cannot diverge even if the process dies mid-write.
const schemaV1 = `
-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
  version INTEGER PRIMARY KEY,
  applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Sound catalog
CREATE TABLE IF NOT EXISTS sounds (
  id INTEGER PRIMARY KEY,
  name VARCHAR(80) NOT NULL UNIQUE,
  tags VARCHAR(2048),
  audio_file VARCHAR(500) NOT NULL UNIQUE,
  created_at DATETIME NOT NULL,
  author_id VARCHAR(32),
  author_name VARCHAR(256),
  author_global_name VARCHAR(256),
  play_count INTEGER DEFAULT 0,
  last_played_at DATETIME DEFAULT NULL,
  popularity REAL DEFAULT 0,
  pinned BOOLEAN DEFAULT FALSE
);

CREATE INDEX IF NOT EXISTS idx_sounds_created_at ON sounds(created_at);
CREATE INDEX IF NOT EXISTS idx_sounds_play_count ON sounds(play_count);
CREATE INDEX IF NOT EXISTS idx_sounds_pinned ON sounds(pinned);

-- Full-text shadow of sounds(name, tags). Trigram tokenizer gives substring
-- matching, remove_diacritics makes it accent-insensitive.
CREATE VIRTUAL TABLE IF NOT EXISTS sounds_fts USING fts5(
  name, tags, content=sounds, content_rowid=id, tokenize='trigram remove_diacritics 1'
);

CREATE TRIGGER IF NOT EXISTS sounds_after_insert AFTER INSERT ON sounds BEGIN
  INSERT INTO sounds_fts(rowid, name, tags)
    VALUES (new.id, new.name, new.tags);
END;

CREATE TRIGGER IF NOT EXISTS sounds_after_delete AFTER DELETE ON sounds BEGIN
  INSERT INTO sounds_fts(sounds_fts, rowid, name, tags)
    VALUES ('delete', old.id, old.name, old.tags);
END;

-- Delete-then-insert, never a partial update: a stale shadow row would make
-- search results lie about the primary table.
CREATE TRIGGER IF NOT EXISTS sounds_after_update AFTER UPDATE ON sounds BEGIN
  INSERT INTO sounds_fts(sounds_fts, rowid, name, tags)
    VALUES ('delete', old.id, old.name, old.tags);
  INSERT INTO sounds_fts(rowid, name, tags)
    VALUES (new.id, new.name, new.tags);
END;

-- Per-guild settings, at most one row (lazily created on first read)
CREATE TABLE IF NOT EXISTS settings (
  id INTEGER PRIMARY KEY,
  join_sound VARCHAR(80),
  leave_sound VARCHAR(80)
);
`
