// Package session keeps the live Klondike tables of the server in memory.
//
// Each service.Session owns its own engine, so tables never share state. The
// store is a map behind one RWMutex; there is no disk copy and a restart
// begins with no sessions.
//
// Access and expiry:
//
// Get is a plain lookup. Touch is the lookup used by player requests: it also
// stamps LastAccessedAt, which CleanupExpiredSessions compares against its
// cutoff. The server sweeps hourly and drops tables idle for a day.
//
// Session IDs are 4 hex characters drawn from crypto/rand and checked
// against the live set. Lookups are case-insensitive.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Touch(sess.ID)
//	removed := manager.CleanupExpiredSessions(24 * time.Hour)
package session
