// Package services defines shared utilities consumed by the correction
// pipeline and its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, stage names, batch numbers, and
//     request identifiers for logging.
//   - Structured error markers plus the Wrap helper, and the mapping from a
//     failure to its Kind and the message shown to the user.
package services
