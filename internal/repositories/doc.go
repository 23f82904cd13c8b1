// package repositories provides the persistence layer.
//
// All durable state lives in SQLite: a kv table holding the syllabus state
// blob and the theme preference, and a sync_sessions table for remote
// sign-ins. The state repository is deliberately fail-soft — a broken or
// missing database degrades the session to in-memory behavior instead of
// surfacing errors to callers.
package repositories
