package feedback

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	pkgerrors "github.com/muhfery/ecommerce-insights-backend/pkg/errors"
)

// Column order of the backing file. The header names are kept as the
// dashboard has always written them, so existing feedback files stay
// readable.
var fileHeader = []string{"nama", "pesan", "rating", "timestamp"}

// Entry is one persisted feedback record. Timestamp is a seconds-precision
// local time string; its format sorts lexicographically by time.
type Entry struct {
	Name      string `json:"name"`
	Message   string `json:"message"`
	Rating    int    `json:"rating"`
	Timestamp string `json:"timestamp"`
}

// Store is an append-only feedback record store backed by one CSV file.
// The whole file is rewritten on every append (read-modify-write); a mutex
// serializes writers within this process. Cross-process writers are not
// coordinated.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore builds a store writing to the given file path. The file is
// created on first append.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Append persists one entry after the existing content. The entry is
// expected to be validated already; the store only guards the file format.
func (s *Store) Append(ctx context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.readAll()
	if err != nil {
		return err
	}
	return s.writeAll(append(existing, entry))
}

// ListAll reads every entry back. A missing file is an empty store, not an
// error. A zero-byte file is deleted and treated as empty; non-empty
// content that fails to parse surfaces as a corrupt-store error with no
// automatic recovery, so no data is silently discarded.
func (s *Store) ListAll(ctx context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll()
}

// Check probes that the store directory is usable, for readiness probes.
func (s *Store) Check(ctx context.Context) error {
	dir := filepath.Dir(s.path)
	if _, err := os.Stat(dir); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "feedback store directory unavailable")
	}
	return nil
}

func (s *Store) Name() string {
	return "feedback-store"
}

func (s *Store) readAll() ([]Entry, error) {
	info, err := os.Stat(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "stat feedback file")
	}

	// Self-heal only the zero-byte case; anything else unreadable is
	// surfaced rather than deleted.
	if info.Size() == 0 {
		if err := os.Remove(s.path); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove empty feedback file")
		}
		return nil, nil
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open feedback file")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = len(fileHeader)

	header, err := reader.Read()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeCorruptStore, err, "read feedback header")
	}
	if len(header) != len(fileHeader) {
		return nil, pkgerrors.New(pkgerrors.CodeCorruptStore, "unexpected feedback header")
	}

	var entries []Entry
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeCorruptStore, err, "parse feedback row")
		}

		rating, err := strconv.Atoi(record[2])
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeCorruptStore, err, "parse feedback rating")
		}

		entries = append(entries, Entry{
			Name:      record[0],
			Message:   record[1],
			Rating:    rating,
			Timestamp: record[3],
		})
	}

	return entries, nil
}

func (s *Store) writeAll(entries []Entry) error {
	f, err := os.Create(s.path)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create feedback file")
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(fileHeader); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write feedback header")
	}
	for _, entry := range entries {
		record := []string{entry.Name, entry.Message, strconv.Itoa(entry.Rating), entry.Timestamp}
		if err := writer.Write(record); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write feedback row")
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "flush feedback file")
	}
	return f.Sync()
}
