// Package logging provides structured logging utilities for the gcalmcp server.
//
// This package centralizes logging patterns to ensure consistent, structured logging
// throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Structured logging with slog
//   - PII sanitization (attendee email anonymization)
//   - Consistent attribute naming across the codebase
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithTool(slog.Default(), "list_events")
//	logger.Info("listing events",
//	    logging.CalendarID(calendarID))
//
// Sanitize sensitive data before logging:
//
//	logger.Info("attendee added",
//	    logging.UserHash(email))
//
// # Security Considerations
//
// Attendee emails are hashed to prevent PII leakage while allowing
// correlation, and tokens are never logged directly.
package logging
