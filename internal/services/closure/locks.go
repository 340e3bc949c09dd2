package closure

import (
	"sync"

	"github.com/ErikGranda885/restocaja/internal/models"
)

// dateLocks serializes mutating operations per calendar date. Two operators
// opening the same day's closure contend on one mutex; work on different
// dates proceeds in parallel.
type dateLocks struct {
	mu    sync.Mutex
	locks map[models.Date]*sync.Mutex
}

// lock acquires the mutex for a date and returns its release func. Callers
// must defer the release so every exit path, including failures, unlocks.
func (l *dateLocks) lock(date models.Date) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[models.Date]*sync.Mutex)
	}
	m, ok := l.locks[date]
	if !ok {
		m = &sync.Mutex{}
		l.locks[date] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
