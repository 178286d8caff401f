package yarandom

import (
	"io"
	"sync"
)

// LockedReader serializes reads on an underlying reader so that one random
// source can feed concurrent prime searches.
type LockedReader struct {
	mu     sync.Mutex
	reader io.Reader
}

func NewLockedReader(r io.Reader) *LockedReader {
	return &LockedReader{reader: r}
}

func (l *LockedReader) Read(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.reader.Read(p)
}
