// Package models defines the core domain models for splitledger.
//
// # Persisted Models
//
//   - Group: a set of members who share expenses
//   - Expense: money fronted by one member, split among participants
//   - Settlement: a recorded confirmation that one simplified transfer was paid
//
// # Conventions
//
// 1. **Money is integer cents**: every persisted amount is an int64 in minor
// currency units. Derived balance intermediates may be real-valued; see the
// calculator package.
// 2. **IDs are opaque strings**: UUIDs for entities, caller-supplied opaque
// IDs for users (user management lives outside this service).
// 3. **Avoid circular references**: relationships use ID strings, not pointers.
// 4. **Timestamps are Unix seconds** (int64), zero meaning "not set".
package models
