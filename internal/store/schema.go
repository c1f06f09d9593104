package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS snapshots (
    key                  TEXT PRIMARY KEY,
    data                 BLOB NOT NULL,
    saved_at             TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS file_tracker (
    file_path            TEXT PRIMARY KEY,
    mtime_ns             INTEGER NOT NULL,
    size_bytes           INTEGER NOT NULL,
    transactions         INTEGER NOT NULL DEFAULT 0,
    imported_at          TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS score_history (
    day                  TEXT PRIMARY KEY,
    karma                INTEGER NOT NULL,
    expense_ratio        REAL NOT NULL,
    runway_days          INTEGER NOT NULL,
    balance              REAL NOT NULL,
    net_flow             REAL NOT NULL,
    recorded_at          TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_file_tracker_imported ON file_tracker(imported_at);
`
