// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists organizations, surveys and survey responses.

# Backends

Open picks the backend from cliparse.Config.DatabaseType:

	st, err := store.Open(ctx, cfg)
	defer st.Close()

  - sqlite, postgres: SQLStore over database/sql (schema created on open)
  - mongo: MongoStore with collections organizations, surveys, survey_responses

# Completion

CompleteResponse is a single conditional update that only matches while the
response is open. When nothing matches, the store re-reads the response to
report ErrNotFound or ErrAlreadyCompleted. Concurrent submissions for one
response therefore complete it exactly once.

Errors are checked with errors.Is:

	if errors.Is(err, store.ErrAlreadyCompleted) { ... }
*/
package store
