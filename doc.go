// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the celeru command, the Celeru survey collection API.

Respondents open a link containing a response id, fetch the survey
definitions and organization branding, and post their answers back once.
NPS, CSAT and CES surveys are supported.

# Starting the Server

With no configuration the server uses a local SQLite file:

	go run . serve

Or with flags:

	go run . serve -p 3318 -t postgres -d "postgres://..."

# Commands

  - serve: run the HTTP server (default)
  - seed: create a sample organization, surveys and open responses, printing their links
  - templates: list the built-in templates or print one as JSON

# Configuration

Flags override environment variables, which override defaults. A .env file
is loaded if present.

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite, postgres or mongo (default: sqlite)
  - DATABASE_URL (-d): Connection string (default for sqlite: file:celeru.db)
  - MONGO_DATABASE (--mongo-database): Database name for mongo (default: celeru)
  - ALLOWED_ORIGINS (--origins): CORS origins (default: *)
  - BASE_URL (--base-url): Survey frontend URL used for seeded links
  - LOG_LEVEL, LOG_FORMAT: slog level and text or json output

# Architecture

  - handlers: HTTP request handlers (surveys, templates, health)
  - router: chi route definitions and middleware stack
  - middleware: logging, CORS, JSON envelope helpers
  - store: response repository (SQL and MongoDB backends)
  - db: connections, dialects and schema
  - templates: built-in question definitions
  - models: domain, view and envelope types
  - ids: response ids and survey links
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
