// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Celeru survey API.

# Route Registration

NewRouter creates a chi router with all endpoints and the middleware stack
(request id, real IP, request logging, panic recovery, CORS):

	h := router.NewRouter(st, cfg)

# Endpoints

Health:

	GET /health

Survey collection (public, keyed by the response id in the survey link):

	GET  /api/survey/{responseId} - Survey definitions and branding
	POST /api/survey/{responseId} - Submit answers

Templates:

	GET /api/templates        - Supported survey types
	GET /api/templates/{type} - Template payload for a type

Unknown routes and unsupported methods answer with the JSON error envelope.
*/
package router
