// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ids generates identifiers and respondent links.

# Response Identifiers

Each respondent gets a random 18-byte (144-bit) identifier:

	id, err := ids.NewResponseID()

Identifiers are URL-safe base64 without padding, so they can appear directly in
a link. They are the only credential a respondent has, so they must not be
guessable.

# Demo Links

Identifiers starting with DemoPrefix ("test") are served from built-in
content and never touch the database:

	if ids.IsDemo(responseID) { ... }

NewResponseID never produces such an identifier.

# Entity Identifiers

Organizations and surveys use UUIDs:

	orgID := ids.NewEntityID()
*/
package ids
