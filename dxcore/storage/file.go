/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"dirpx.dev/dxbook/dxcore/model/addressbook"
	"github.com/gofrs/flock"
)

var (
	// ErrNotFound indicates the address book file does not exist.
	ErrNotFound = errors.New("address book not found")

	// ErrLocked indicates another process held the lock until the wait ran out.
	ErrLocked = errors.New("address book is locked by another process")
)

const lockRetryDelay = 50 * time.Millisecond

// FileStorage persists an address book in a single file.
//
// Reads take a shared lock and writes an exclusive one on a sibling
// "<path>.lock" file, so concurrent dxbook processes never observe a
// half-written book. Writes go to a temporary file that is renamed over the
// target.
type FileStorage struct {
	path        string
	codec       Codec
	decodeOpts  []DecodeOption
	lockTimeout time.Duration
	logger      *slog.Logger
}

// Option configures a FileStorage.
type Option func(*FileStorage)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(s *FileStorage) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCodec overrides the codec picked from the file extension.
func WithCodec(c Codec) Option {
	return func(s *FileStorage) {
		if c != nil {
			s.codec = c
		}
	}
}

// WithDecodeOptions passes opts to every Decode.
func WithDecodeOptions(opts ...DecodeOption) Option {
	return func(s *FileStorage) {
		s.decodeOpts = append(s.decodeOpts, opts...)
	}
}

// WithLockTimeout bounds how long Load and Save wait for the file lock. Zero
// waits as long as the context allows.
func WithLockTimeout(d time.Duration) Option {
	return func(s *FileStorage) {
		s.lockTimeout = d
	}
}

// NewFileStorage returns a FileStorage for path.
func NewFileStorage(path string, opts ...Option) *FileStorage {
	s := &FileStorage{
		path:   path,
		codec:  CodecFor(path),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file the book is stored in.
func (s *FileStorage) Path() string { return s.path }

// Load reads and decodes the book. It returns an error wrapping ErrNotFound
// when the file does not exist.
func (s *FileStorage) Load(ctx context.Context) (*addressbook.AddressBook, error) {
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, s.path)
	}

	unlock, err := s.lock(ctx, true)
	if err != nil {
		return nil, err
	}
	defer unlock()

	return s.loadLocked()
}

// loadLocked reads the book without acquiring the lock (caller must hold it).
func (s *FileStorage) loadLocked() (*addressbook.AddressBook, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, s.path)
		}
		return nil, fmt.Errorf("reading address book: %w", err)
	}

	doc, err := s.codec.Unmarshal(data)
	if err != nil {
		return nil, err
	}

	book, err := Decode(doc, s.decodeOpts...)
	if err != nil {
		s.logger.Warn("address book failed integrity checks", "path", s.path, "error", err)
		return nil, err
	}

	s.logger.Debug("address book loaded",
		"path", s.path,
		"persons", len(doc.Persons),
		"groups", len(doc.Groups),
	)
	return book, nil
}

// Save encodes b and replaces the file atomically.
func (s *FileStorage) Save(ctx context.Context, b *addressbook.AddressBook) error {
	unlock, err := s.lock(ctx, false)
	if err != nil {
		return err
	}
	defer unlock()

	return s.saveLocked(b)
}

// saveLocked writes the book without acquiring the lock (caller must hold it).
func (s *FileStorage) saveLocked(b *addressbook.AddressBook) error {
	data, err := s.codec.Marshal(Encode(b))
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing address book: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing address book: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing address book: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replacing address book: %w", err)
	}

	s.logger.Debug("address book saved", "path", s.path, "bytes", len(data))
	return nil
}

// LoadOrCreate loads the book, or creates and saves an empty one when the
// file does not exist yet.
func (s *FileStorage) LoadOrCreate(ctx context.Context) (*addressbook.AddressBook, error) {
	book, err := s.Load(ctx)
	if err == nil {
		return book, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	book = addressbook.New()
	if err := s.Save(ctx, book); err != nil {
		return nil, fmt.Errorf("creating address book: %w", err)
	}
	s.logger.Info("created address book", "path", s.path)
	return book, nil
}

// LoadOrNew loads the book, or returns an empty one without writing
// anything when the file does not exist yet.
func (s *FileStorage) LoadOrNew(ctx context.Context) (*addressbook.AddressBook, error) {
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return addressbook.New(), nil
	}

	unlock, err := s.lock(ctx, true)
	if err != nil {
		return nil, err
	}
	defer unlock()

	return s.loadOrNewLocked()
}

func (s *FileStorage) loadOrNewLocked() (*addressbook.AddressBook, error) {
	book, err := s.loadLocked()
	if errors.Is(err, ErrNotFound) {
		return addressbook.New(), nil
	}
	return book, err
}

// Update loads the book under an exclusive lock, applies fn and saves the
// result. A missing file starts from an empty book. Nothing is written when
// fn fails.
func (s *FileStorage) Update(ctx context.Context, fn func(*addressbook.AddressBook) error) error {
	unlock, err := s.lock(ctx, false)
	if err != nil {
		return err
	}
	defer unlock()

	book, err := s.loadOrNewLocked()
	if err != nil {
		return err
	}

	if err := fn(book); err != nil {
		return err
	}
	return s.saveLocked(book)
}

func (s *FileStorage) lock(ctx context.Context, shared bool) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return nil, fmt.Errorf("creating directory: %w", err)
	}
	if s.lockTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.lockTimeout)
		defer cancel()
	}

	fl := flock.New(s.path + ".lock")
	var (
		ok  bool
		err error
	)
	if shared {
		ok, err = fl.TryRLockContext(ctx, lockRetryDelay)
	} else {
		ok, err = fl.TryLockContext(ctx, lockRetryDelay)
	}
	if errors.Is(err, context.DeadlineExceeded) || (err == nil && !ok) {
		return nil, fmt.Errorf("%w: %s", ErrLocked, s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("locking address book: %w", err)
	}

	return func() {
		if err := fl.Unlock(); err != nil {
			s.logger.Warn("releasing address book lock", "path", s.path, "error", err)
		}
	}, nil
}
