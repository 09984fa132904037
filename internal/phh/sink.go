package phh

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lox/holdem-engine/internal/fileutil"
)

// Sink stores finished hand histories.
type Sink interface {
	WriteHand(*HandHistory) error
}

// WriterSink appends hands to a writer, separated by blank lines.
type WriterSink struct {
	w io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) WriteHand(h *HandHistory) error {
	data, err := EncodeToBytes(h)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "%s\n", data); err != nil {
		return fmt.Errorf("phh: write hand %s: %w", h.HandID, err)
	}
	return nil
}

// DirSink writes one <hand id>.phh file per hand.
type DirSink struct {
	dir string
}

// NewDirSink creates dir if needed.
func NewDirSink(dir string) (*DirSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("phh: create %s: %w", dir, err)
	}
	return &DirSink{dir: dir}, nil
}

// Path returns where a hand is written.
func (s *DirSink) Path(handID string) string {
	return filepath.Join(s.dir, handID+".phh")
}

func (s *DirSink) WriteHand(h *HandHistory) error {
	data, err := EncodeToBytes(h)
	if err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(s.Path(h.HandID), data, 0o644)
}
