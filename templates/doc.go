// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package templates holds the built-in SurveyJS question definitions.

Definitions live in definitions/*.yaml, are embedded in the binary, and are
decoded once at startup. They cannot be changed at runtime:

	payload, ok := templates.Lookup(models.SurveyTypeCSAT)
	fallback := templates.NPS()

Lookup and NPS return copies, so callers may keep or modify the result.
*/
package templates
