// Package csv implements the persisted CSV log sink from spec.md §6,
// grounded on original_source's lib/Logging/DataLogger.{h,cpp}: an
// internal row buffer flushed at an explicit boundary. With the default
// boundary of one row, every Write performs the file write itself.
package csv

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/asithakal/vawt-control-guide/internal/capability"
	"github.com/asithakal/vawt-control-guide/internal/scheduler"
)

// defaultFlushEvery matches the original firmware's call pattern of
// flushing once per loop iteration: Write appends the row to the buffer
// and then, at this setting, writes the buffer to the file before it
// returns.
const defaultFlushEvery = 1

// Sink appends Records to a CSV file, writing the header once. RunID
// identifies each sink instance; it is written to the file, as a comment
// line ahead of the header, only when Open finds the file new or empty.
// Rows appended by later instances carry no run id of their own.
type Sink struct {
	mu         sync.Mutex
	f          *os.File
	buf        bytes.Buffer
	wroteCount int
	flushEvery int
	RunID      uuid.UUID
}

// Open creates (or appends to) the CSV file at path, writing the header
// if the file is new/empty.
func Open(path string) (*Sink, error) {
	info, statErr := os.Stat(path)
	needsHeader := statErr != nil || info.Size() == 0

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("csv: opening %s: %w", path, err)
	}

	s := &Sink{f: f, flushEvery: defaultFlushEvery, RunID: uuid.New()}
	if needsHeader {
		s.buf.WriteString("# run_id: ")
		s.buf.WriteString(s.RunID.String())
		s.buf.WriteByte('\n')
		s.buf.WriteString(scheduler.CSVHeader)
		s.buf.WriteByte('\n')
	}
	return s, nil
}

// Write appends rec's formatted row to the internal buffer, flushing to
// disk every flushEvery rows.
func (s *Sink) Write(_ context.Context, rec capability.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf.WriteString(scheduler.FormatRow(rec))
	s.wroteCount++
	if s.wroteCount >= s.flushEvery {
		return s.flushLocked()
	}
	return nil
}

// Flush writes any buffered rows to disk without closing the file.
func (s *Sink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked()
}

func (s *Sink) flushLocked() error {
	if s.buf.Len() == 0 {
		return nil
	}
	if _, err := s.f.Write(s.buf.Bytes()); err != nil {
		return fmt.Errorf("csv: writing: %w", err)
	}
	s.buf.Reset()
	s.wroteCount = 0
	return nil
}

// Close flushes and closes the underlying file.
func (s *Sink) Close() error {
	if err := s.Flush(); err != nil {
		s.f.Close()
		return err
	}
	return s.f.Close()
}

var _ capability.LogSink = (*Sink)(nil)
