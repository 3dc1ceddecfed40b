// Package storage provides the local persistence capability the client keeps
// its session token in: a small string key-value store with Get, Set and
// Remove.
//
// Implementations:
//   - SQLiteStore: a kv table in a local SQLite file (modernc.org/sqlite),
//     created by embedded goose migrations.
//   - RedisStore: keys under a prefix in Redis, with an optional TTL.
//   - MemoryStore: a process-local map, for tests and throwaway sessions.
//
// Absent keys are reported with ok == false and a nil error; errors are
// reserved for I/O failures.
package storage
