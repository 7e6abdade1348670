package service

import "sync"

// submissionLocks serializes decision recording per submission id, so two
// editors racing to decide the same submission are ordered instead of
// interleaved. Entries are reference-counted and removed when idle.
type submissionLocks struct {
	mu    sync.Mutex
	locks map[int64]*submissionLock
}

type submissionLock struct {
	mu   sync.Mutex
	refs int
}

func newSubmissionLocks() *submissionLocks {
	return &submissionLocks{locks: make(map[int64]*submissionLock)}
}

func (l *submissionLocks) lock(submissionID int64) {
	l.mu.Lock()
	entry, ok := l.locks[submissionID]
	if !ok {
		entry = &submissionLock{}
		l.locks[submissionID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
}

func (l *submissionLocks) unlock(submissionID int64) {
	l.mu.Lock()
	entry := l.locks[submissionID]
	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, submissionID)
	}
	l.mu.Unlock()

	entry.mu.Unlock()
}
