package app

import "errors"

// ErrFileCreateFailed and related errors describe persistence failures.
var (
	ErrFileCreateFailed  = errors.New("failed to create file")
	ErrFileReadFailed    = errors.New("failed to read file")
	ErrFileWriteFailed   = errors.New("failed to write file")
	ErrMalformedDocument = errors.New("malformed board document")
	ErrDirectoryMissing  = errors.New("directory does not exist")
	ErrFileExists        = errors.New("file already exists")
)
