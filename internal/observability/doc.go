// Package observability provides event logging, metrics calculation, and
// alerting for vault-brain. Events are persisted as JSON Lines (JSONL) or in
// a SQLite table, and metrics and alerts are derived on demand from them.
package observability
