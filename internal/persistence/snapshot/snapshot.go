// Package snapshot writes the entire feed state (posts plus every
// comment thread) to a single zstd-compressed file and reads it back.
// The file starts with a plain JSON header line so tooling can inspect
// a snapshot without decoding the body.
package snapshot

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"ignitefeed.app/internal/persistence/state"
)

type Header struct {
	Version int    `json:"version"`
	SavedAt string `json:"saved_at"`
	Posts   int    `json:"posts"`
}

type StateV1 struct {
	Header Header `json:"header"`

	Posts []state.PostV1 `json:"posts"`
	// Comment threads keyed by post id.
	Comments map[int64][]state.CommentV1 `json:"comments,omitempty"`
}

func Write(path string, st StateV1) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	defer enc.Close()

	bw := bufio.NewWriterSize(enc, 64*1024)
	defer bw.Flush()

	hb, _ := json.Marshal(st.Header)
	if _, err := bw.Write(hb); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}

	if err := json.NewEncoder(bw).Encode(&st); err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	return nil
}

func Read(path string) (StateV1, error) {
	var st StateV1
	f, err := os.Open(path)
	if err != nil {
		return st, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return st, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 64*1024)

	// Skip the header line; the body carries the header too.
	_, _ = br.ReadBytes('\n')

	if err := json.NewDecoder(br).Decode(&st); err != nil {
		return st, fmt.Errorf("decode state: %w", err)
	}
	return st, nil
}
