// Package auth implements session-based authentication: registration,
// credential checks with account lockout, scs-backed session management,
// login rate limiting and CSRF protection.
//
// Sessions are stored next to the application data (SQLite or Postgres,
// matching the configured driver). All endpoints are JSON; there is no
// HTML login flow.
package auth
