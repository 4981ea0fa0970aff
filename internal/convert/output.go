// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
)

// outputFile buffers writes to a temporary file beside the destination and
// hashes them as they go.
type outputFile struct {
	path string
	tmp  *os.File
	buf  *bufio.Writer
	sum  hash.Hash
	size int64
	done bool
}

func createOutput(path string) (*outputFile, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("creating temporary file for %s: %w", path, err)
	}
	o := &outputFile{path: path, tmp: tmp, sum: sha256.New()}
	o.buf = bufio.NewWriter(io.MultiWriter(tmp, o.sum))
	return o, nil
}

func (o *outputFile) Write(p []byte) (int, error) {
	n, err := o.buf.Write(p)
	o.size += int64(n)
	return n, err
}

// commit flushes the temporary file and renames it over the destination.
func (o *outputFile) commit() error {
	if err := o.buf.Flush(); err != nil {
		return fmt.Errorf("writing %s: %w", o.path, err)
	}
	if err := o.tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("writing %s: %w", o.path, err)
	}
	if err := o.tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", o.path, err)
	}
	if err := os.Rename(o.tmp.Name(), o.path); err != nil {
		os.Remove(o.tmp.Name())
		return fmt.Errorf("replacing %s: %w", o.path, err)
	}
	o.done = true
	return nil
}

// abort discards the temporary file unless commit succeeded. It is safe to
// call after commit.
func (o *outputFile) abort() {
	if o.done {
		return
	}
	o.tmp.Close()
	os.Remove(o.tmp.Name())
}

func (o *outputFile) digest() string {
	return hex.EncodeToString(o.sum.Sum(nil))
}
