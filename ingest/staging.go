package ingest

import "sync"

// Staging holds at most one parsed, unconfirmed upload per user. Each
// upload attempt takes a generation number; a parse outcome is only staged
// if no newer attempt has begun since, so a slow decode of an old file can
// never overwrite a newer selection (last-writer-wins).
type Staging struct {
	mu      sync.Mutex
	uploads map[uint]*stagedUpload
}

type stagedUpload struct {
	gen          uint64
	result       *ParseResult
	lastAccepted string
}

func NewStaging() *Staging {
	return &Staging{uploads: make(map[uint]*stagedUpload)}
}

// Begin registers a new upload attempt. A file named identically to the
// most recently accepted upload is rejected without re-parsing and leaves
// the staged records untouched.
func (s *Staging) Begin(userID uint, filename string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.uploads[userID]
	if u == nil {
		u = &stagedUpload{}
		s.uploads[userID] = u
	}
	if filename != "" && filename == u.lastAccepted {
		return 0, ErrDuplicateFile
	}
	u.gen++
	return u.gen, nil
}

// Complete records a parse outcome for the attempt identified by gen. A
// result from a superseded generation is dropped. A parse failure is
// terminal for the attempt: the staged buffer is cleared and the caller
// must prompt for a new file.
func (s *Staging) Complete(userID uint, gen uint64, result *ParseResult, parseErr error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.uploads[userID]
	if u == nil || gen != u.gen {
		return ErrSuperseded
	}
	if parseErr != nil {
		u.result = nil
		return parseErr
	}
	u.result = result
	u.lastAccepted = result.Filename
	return nil
}

// Peek returns the staged result without consuming it.
func (s *Staging) Peek(userID uint) (*ParseResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.uploads[userID]
	if u == nil || u.result == nil {
		return nil, false
	}
	return u.result, true
}

// Clear discards any staged result for the user. The accepted filename is
// remembered so an immediate re-upload of the same file is still rejected.
func (s *Staging) Clear(userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u := s.uploads[userID]; u != nil {
		u.result = nil
	}
}
