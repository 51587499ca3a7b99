// ABOUTME: SQLite database schema for FAQ storage
// ABOUTME: Creates the faqs, chat_logs and feedback tables with their indexes
package sqlite

// Schema contains all SQL statements for database initialization.
// rowid order on faqs is the corpus order used by the similarity index.
const Schema = `
CREATE TABLE IF NOT EXISTS faqs (
    id TEXT PRIMARY KEY,
    question TEXT NOT NULL,
    answer TEXT NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS chat_logs (
    id TEXT PRIMARY KEY,
    query TEXT NOT NULL,
    answer TEXT NOT NULL,
    source TEXT NOT NULL CHECK (source IN ('faq', 'ai')),
    confidence REAL NOT NULL DEFAULT 0,
    session_id TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS feedback (
    id TEXT PRIMARY KEY,
    query TEXT NOT NULL,
    is_positive INTEGER NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_chat_logs_session ON chat_logs(session_id);
CREATE INDEX IF NOT EXISTS idx_chat_logs_query ON chat_logs(query);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
