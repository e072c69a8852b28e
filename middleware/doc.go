// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Install request logging on the router:

	r.Use(middleware.WithLogging)

Logs request start at debug level (method, path, remote, request_id) and
completion (status, duration_ms). The request id comes from chi's RequestID
middleware when it runs first.

# CORS Middleware

Enable cross-origin requests for the survey frontend:

	r.Use(middleware.CORS(cfg.AllowedOrigins))

Allows GET, POST and OPTIONS. Credentials are only allowed when the origin
list has no wildcard.

# JSON Helpers

Every body uses the {success, data, error, message} envelope:

	middleware.SuccessResponse(w, http.StatusOK, "", view)
	middleware.ErrorResponse(w, http.StatusNotFound, "Survey not found", "This survey link may be invalid or expired")

Parse JSON request bodies (numbers in interface values stay json.Number):

	var answers map[string]any
	if err := middleware.ParseJSONBody(r, &answers); err != nil {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal server error", "...")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
