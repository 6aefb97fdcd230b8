package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/semizhon/hh-kz-cad/internal/domain"
)

const fileName = "jobs_snapshot.json"

// Snapshot is the on-disk daily record. Valid for consumption only when its
// date equals the current calendar day.
type Snapshot struct {
	Date          string         `json:"date"`
	CreatedAt     string         `json:"created_at"`
	RequestParams domain.Query   `json:"request_params"`
	Payload       *domain.Result `json:"payload"`
}

// Store persists one snapshot file, overwritten on each new day's first
// successful aggregate. The snapshot is global: the first query of the day
// pins that day's result for every parameter combination. The mutex guards
// concurrent first-requests of the day.
type Store struct {
	mu  sync.Mutex
	dir string
}

// NewStore creates a snapshot store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// ReadIfFresh returns today's snapshot, or false when the file is missing,
// unreadable, unparseable or stale. IO and decode errors deliberately count
// as "absent".
func (s *Store) ReadIfFresh() (*Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.dir, fileName))
	if err != nil {
		return nil, false
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, false
	}
	if snap.Date != today() {
		return nil, false
	}
	return &snap, true
}

// Write persists payload as today's snapshot. Best-effort: the caller logs
// and drops the returned error, it never aborts a request.
func (s *Store) Write(payload *domain.Result, params domain.Query) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	snap := Snapshot{
		Date:          today(),
		CreatedAt:     time.Now().Format("2006-01-02T15:04:05"),
		RequestParams: params,
		Payload:       payload,
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, fileName), data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func today() string {
	return time.Now().Format("2006-01-02")
}
