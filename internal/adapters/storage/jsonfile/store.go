package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/evanschultz/tack/internal/app"
	"github.com/evanschultz/tack/internal/domain"
)

// filePerm defines the mode used for new board files.
const filePerm = 0o644

// Store reads and writes boards as JSON documents on the local filesystem.
type Store struct {
	indent string
}

// New constructs a JSON file store.
func New() *Store {
	return &Store{indent: "  "}
}

// Load decodes the board stored at path.
func (s *Store) Load(_ context.Context, path string) (domain.Board, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.Board{}, fmt.Errorf("%w: %s: %w", app.ErrFileReadFailed, path, err)
	}
	return Decode(content)
}

// Save overwrites the file at path with the encoded board.
func (s *Store) Save(_ context.Context, path string, board domain.Board) error {
	encoded, err := s.encode(board)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, encoded, filePerm); err != nil {
		return fmt.Errorf("%w: %s: %w", app.ErrFileWriteFailed, path, err)
	}
	return nil
}

// Create writes board to a new file at path and never overwrites an existing one.
func (s *Store) Create(_ context.Context, path string, board domain.Board) error {
	if err := CheckDir(path); err != nil {
		return err
	}
	encoded, err := s.encode(board)
	if err != nil {
		return err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, filePerm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s: %w", app.ErrFileCreateFailed, path, app.ErrFileExists)
		}
		return fmt.Errorf("%w: %s: %w", app.ErrFileCreateFailed, path, err)
	}
	if _, err := file.Write(encoded); err != nil {
		_ = file.Close()
		return fmt.Errorf("%w: %s: %w", app.ErrFileWriteFailed, path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("%w: %s: %w", app.ErrFileWriteFailed, path, err)
	}
	return nil
}

// encode renders the board document with a trailing newline.
func (s *Store) encode(board domain.Board) ([]byte, error) {
	board.Normalize()
	encoded, err := json.MarshalIndent(board, "", s.indent)
	if err != nil {
		return nil, fmt.Errorf("encode board json: %w", err)
	}
	return append(encoded, '\n'), nil
}

// Decode parses one board document. Cursor fields are never part of the document.
func Decode(content []byte) (domain.Board, error) {
	var board domain.Board
	if strings.TrimSpace(string(content)) == "" {
		return domain.Board{}, fmt.Errorf("%w: empty document", app.ErrMalformedDocument)
	}
	if err := json.Unmarshal(content, &board); err != nil {
		return domain.Board{}, fmt.Errorf("%w: %w", app.ErrMalformedDocument, err)
	}
	board.Normalize()
	return board, nil
}

// CheckDir reports app.ErrDirectoryMissing when the parent directory of path is absent.
func CheckDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", app.ErrDirectoryMissing, dir)
		}
		return fmt.Errorf("stat board dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", app.ErrDirectoryMissing, dir)
	}
	return nil
}

// EnsureDir creates the parent directory of path.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create board dir: %w", err)
	}
	return nil
}
