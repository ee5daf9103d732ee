// Package models defines the core domain models for AcertÔ.
//
// # Entities
//
//   - Group: a named set of members (by e-mail) administered by one owner
//   - Invite: an opaque join token issued for a group
//   - Expense: a purchase split equally among all or selected members
//   - LogEntry: one line of a group's append-only activity feed
//   - User: a registered account; its ID is the owner of groups
//
// # Ownership
//
// A Group owns its Expenses, Invites and LogEntries through GroupID.
// Deleting a group deletes all of them. Nothing is shared across groups.
//
// # Design Principles
//
// 1. **IDs, not pointers**: relationships are ID strings
// 2. **Money is decimal**: amounts use shopspring/decimal, never float64
// 3. **Events are tagged**: log entries carry a Kind and structured Payload;
//    Message is the rendered prose kept for display and older entries
package models
