package triplog

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Baaaki/ride-server/pkg/logger"
	"go.uber.org/zap"
)

// Entry records one lifecycle event of a ride: its creation or a status
// transition, with the user that triggered it.
type Entry struct {
	RideID    string    `json:"ride_id"`
	Status    string    `json:"status"`
	ActorID   string    `json:"actor_id"`
	Timestamp time.Time `json:"timestamp"`
}

// Log is an append-only JSON-lines audit trail of ride lifecycle events.
// The database row for a ride only holds its current status; the trip log
// keeps the full transition history for dispute handling.
type Log struct {
	filePath string
	file     *os.File
	mu       sync.Mutex
}

func Open(filePath string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	return &Log{
		filePath: filePath,
		file:     file,
	}, nil
}

// Append writes an entry and syncs it to disk.
func (l *Log) Append(entry Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := json.Marshal(entry)
	if err != nil {
		logger.Log.Error("Trip log: failed to marshal entry",
			zap.String("ride_id", entry.RideID),
			zap.Error(err),
		)
		return err
	}

	if _, err := l.file.WriteString(string(data) + "\n"); err != nil {
		logger.Log.Error("Trip log: failed to write entry",
			zap.String("ride_id", entry.RideID),
			zap.Error(err),
		)
		return err
	}

	if err := l.file.Sync(); err != nil {
		logger.Log.Error("Trip log: failed to sync to disk",
			zap.String("ride_id", entry.RideID),
			zap.Error(err),
		)
		return err
	}

	logger.Log.Debug("Trip log: entry written",
		zap.String("ride_id", entry.RideID),
		zap.String("status", entry.Status),
	)

	return nil
}

// ReadAll returns every entry in the log, oldest first.
func (l *Log) ReadAll() ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.readAllUnsafe()
}

// EntriesFor returns the lifecycle history of a single ride, oldest first.
func (l *Log) EntriesFor(rideID string) ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	all, err := l.readAllUnsafe()
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, entry := range all {
		if entry.RideID == rideID {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// readAllUnsafe reads all entries without locking (internal use only).
// Malformed lines are skipped rather than failing the whole read.
func (l *Log) readAllUnsafe() ([]Entry, error) {
	file, err := os.Open(l.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, err
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	return entries, scanner.Err()
}

// Close closes the log file.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}
