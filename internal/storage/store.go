package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/zeebo/xxh3"

	"github.com/san-kum/attgen/internal/record"
)

var (
	ErrNotInitialized = errors.New("storage: store not initialized")

	// ErrIndexTaken means the entry count points at an existing file, which
	// happens when numbered files were removed from the directory.
	ErrIndexTaken = errors.New("storage: next round index already in use")
)

// Store writes rounds to <dir>/<index>.<ext>. The index starts at the number
// of entries already present in dir so a restarted run never overwrites
// earlier output.
type Store struct {
	baseDir string
	ext     string
	level   int

	mu     sync.Mutex
	next   int
	ready  bool
	buffer *record.BufferPool
}

func New(baseDir, ext string, level int) *Store {
	return &Store{
		baseDir: baseDir,
		ext:     strings.TrimPrefix(ext, "."),
		level:   level,
		buffer:  record.NewBufferPool(4096 * record.Size),
	}
}

func (s *Store) Init() error {
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return fmt.Errorf("read output dir: %w", err)
	}

	next := len(entries)
	if _, err := os.Stat(s.path(next)); err == nil {
		return fmt.Errorf("%w: %s", ErrIndexTaken, s.path(next))
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("check %s: %w", s.path(next), err)
	}

	s.mu.Lock()
	s.next = next
	s.ready = true
	s.mu.Unlock()
	return nil
}

func (s *Store) Dir() string { return s.baseDir }

// Next is the index the following round will be written under.
func (s *Store) Next() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}

func (s *Store) path(index int) string {
	return filepath.Join(s.baseDir, strconv.Itoa(index)+"."+s.ext)
}

// RoundInfo describes one written file.
type RoundInfo struct {
	Index    int
	Path     string
	Records  int
	Bytes    int64
	Checksum uint64
}

type countingWriter struct{ n int64 }

func (c *countingWriter) Write(p []byte) (int, error) {
	c.n += int64(len(p))
	return len(p), nil
}

// WriteRound encodes, compresses and writes records to a fresh file, then
// advances the index. The checksum covers the compressed bytes on disk.
func (s *Store) WriteRound(records []record.Record) (RoundInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return RoundInfo{}, ErrNotInitialized
	}

	buf := s.buffer.Get()
	defer s.buffer.Put(buf)
	*buf = record.EncodeTo(*buf, records)

	info := RoundInfo{Index: s.next, Path: s.path(s.next), Records: len(records)}

	f, err := os.OpenFile(info.Path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return RoundInfo{}, fmt.Errorf("create %s: %w", info.Path, err)
	}

	hasher := xxh3.New()
	counter := &countingWriter{}
	w := bufio.NewWriter(f)

	if err := record.Compress(io.MultiWriter(w, hasher, counter), *buf, s.level); err != nil {
		f.Close()
		return RoundInfo{}, fmt.Errorf("write %s: %w", info.Path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return RoundInfo{}, fmt.Errorf("flush %s: %w", info.Path, err)
	}
	if err := f.Close(); err != nil {
		return RoundInfo{}, fmt.Errorf("close %s: %w", info.Path, err)
	}

	info.Bytes = counter.n
	info.Checksum = hasher.Sum64()
	s.next++
	return info, nil
}

// List returns the numbered round files in dir in index order.
func (s *Store) List() ([]RoundInfo, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RoundInfo{}, nil
		}
		return nil, err
	}

	rounds := make([]RoundInfo, 0, len(entries))
	suffix := "." + s.ext
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, suffix) {
			continue
		}
		index, err := strconv.Atoi(strings.TrimSuffix(name, suffix))
		if err != nil {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		rounds = append(rounds, RoundInfo{
			Index: index,
			Path:  filepath.Join(s.baseDir, name),
			Bytes: fi.Size(),
		})
	}

	slices.SortFunc(rounds, func(a, b RoundInfo) int { return a.Index - b.Index })
	return rounds, nil
}

// Load decodes the round stored under index.
func (s *Store) Load(index int) ([]record.Record, error) {
	return record.DecodeFile(s.path(index))
}

// Checksum hashes the file stored under index.
func (s *Store) Checksum(index int) (uint64, error) {
	f, err := os.Open(s.path(index))
	if err != nil {
		return 0, err
	}
	defer f.Close()

	h := xxh3.New()
	if _, err := io.Copy(h, f); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}
