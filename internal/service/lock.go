package service

import "sync"

// In-process keyed mutexes guard read-modify-write sequences on a single
// session or product. Cross-process exclusion is layered on top with Redis
// locks at the handler level.
var keyedLocks sync.Map

func lockFor(key string) *sync.Mutex {
	mu, _ := keyedLocks.LoadOrStore(key, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
