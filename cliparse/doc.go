// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Commands that own their flag set bind the same flags and resolve afterwards:

	cliparse.RegisterFlags(cmd.Flags(), &cfg)
	...
	err := cliparse.Resolve(&cfg)

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: sqlite, postgres or mongo (default: sqlite)
  - DatabaseURL: connection string (default for sqlite: file:celeru.db)
  - MongoDatabase: database name when DatabaseType is mongo (default: celeru)
  - AllowedOrigins: CORS origins (default: *)
  - BaseURL: public frontend URL used to print survey links
  - LogLevel, LogFormat: slog level and text/json output

# CLI Flags

	-p, --port           Server port
	-d, --database-url   Database URL
	-t, --database-type  Database type
	--mongo-database     MongoDB database name
	--origins            Allowed CORS origins (comma separated)
	--base-url           Frontend URL
	--log-level          debug, info, warn, error
	--log-format         text or json
	--env-file           Environment file (default: .env)

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	MONGO_DATABASE  → --mongo-database
	ALLOWED_ORIGINS → --origins
	BASE_URL        → --base-url
	LOG_LEVEL       → --log-level
	LOG_FORMAT      → --log-format

Variables from the env file are loaded first but never override variables
already present in the process environment. CLI flags take precedence over both.

# Validation

The resolved Config is validated with go-playground/validator; ParseFlags
returns an error for an unknown database type, an out-of-range port, a missing
database URL for postgres/mongo, or an unknown log level or format.
*/
package cliparse
