// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens SQL connections and creates the schema.

# Connections

Two dialects are supported:

	conn, err := db.Open(db.DialectSQLite, "file:celeru.db")
	conn, err := db.Open(db.DialectPostgres, "postgres://...")

SQLite uses the pure-Go modernc.org/sqlite driver and is limited to a single
open connection. PostgreSQL uses github.com/lib/pq.

Queries are written with ? placeholders; Rebind converts them to $1, $2, ...
for PostgreSQL.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - organization: tenant name and branding
  - survey: survey type and serialized question definitions
  - survey_response: one row per respondent link, completed at most once

# Relationships

	organization 1──* survey
	survey 1──* survey_response
	organization 1──* survey_response
*/
package db
