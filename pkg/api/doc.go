// Package api defines the messages exchanged over the acerto.v1 Connect
// services. Messages travel as JSON; money amounts are decimal strings.
package api
