package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Counter is a file-backed sequence number, persisted across restarts so
// archived creatives keep globally unique names. A corrupt or missing
// counter file restarts the sequence at zero.
type Counter struct {
	mu    sync.Mutex
	path  string
	value uint64
}

// NewCounter opens (or creates) the counter file at path.
func NewCounter(path string) (*Counter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create counter dir: %w", err)
		}
	}

	c := &Counter{path: path}
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read counter file: %w", err)
		}
		if err := os.WriteFile(path, []byte("0"), 0o644); err != nil {
			return nil, fmt.Errorf("failed to create counter file: %w", err)
		}
		return c, nil
	}

	if value, err := strconv.ParseUint(strings.TrimSpace(string(raw)), 10, 64); err == nil {
		c.value = value
	}
	return c, nil
}

// Next increments the sequence, persists it and returns the new value.
func (c *Counter) Next() (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.value + 1
	if err := os.WriteFile(c.path, []byte(strconv.FormatUint(next, 10)), 0o644); err != nil {
		return 0, fmt.Errorf("failed to persist counter: %w", err)
	}
	c.value = next
	return next, nil
}

// Archive stores processed copies of user creatives under sequential
// names, so the corpus team can cross-reference an archived file with the
// user's journal entries.
type Archive struct {
	store   Storage
	counter *Counter
}

// NewArchive wraps a storage backend with the sequential naming scheme.
// The counter file lives outside the backend, next to the other runtime
// state.
func NewArchive(store Storage, counterPath string) (*Archive, error) {
	counter, err := NewCounter(counterPath)
	if err != nil {
		return nil, err
	}
	return &Archive{store: store, counter: counter}, nil
}

// SaveImage archives one processed creative image as
// <userID>_<sequence>.jpg and returns the storage path.
func (a *Archive) SaveImage(ctx context.Context, userID int64, data []byte) (string, error) {
	seq, err := a.counter.Next()
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%d_%d.jpg", userID, seq)
	return a.store.Upload(ctx, uuid.New(), filename, bytes.NewReader(data))
}
