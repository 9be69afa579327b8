package postgres

// Schema holds the DDL for the inventory tables. Every statement is
// idempotent so it can run on each start.
const Schema = `
CREATE TABLE IF NOT EXISTS sync_jobs (
    id                 UUID PRIMARY KEY,
    root               TEXT NOT NULL,
    status             TEXT NOT NULL,
    dirs_succeeded     INTEGER NOT NULL DEFAULT 0,
    dirs_failed        INTEGER NOT NULL DEFAULT 0,
    files_succeeded    INTEGER NOT NULL DEFAULT 0,
    files_failed       INTEGER NOT NULL DEFAULT 0,
    error              TEXT,
    started_at         TIMESTAMPTZ NOT NULL,
    finished_at        TIMESTAMPTZ,
    duration_ms        BIGINT
);

CREATE TABLE IF NOT EXISTS resources (
    path         TEXT PRIMARY KEY,
    parent_path  TEXT REFERENCES resources (path) ON DELETE CASCADE,
    name         TEXT NOT NULL,
    type         TEXT NOT NULL,
    size         BIGINT,
    md5          TEXT,
    sha256       TEXT,
    mime_type    TEXT,
    media_type   TEXT,
    resource_id  TEXT,
    public_url   TEXT,
    created_at   TIMESTAMPTZ,
    modified_at  TIMESTAMPTZ,
    sync_job_id  UUID NOT NULL REFERENCES sync_jobs (id),
    synced_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS resources_parent_path_idx ON resources (parent_path);
CREATE INDEX IF NOT EXISTS resources_sync_job_id_idx ON resources (sync_job_id);
`
