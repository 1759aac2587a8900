package content

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no article has the requested id.
	ErrNotFound = errors.New("content: article not found")

	ErrInvalidFrontMatter = errors.New("invalid front matter")
	ErrInvalidDate        = errors.New("invalid publishedDate")
	ErrInvalidID          = errors.New("invalid article id")
	ErrDuplicateID        = errors.New("duplicate article id")
)

// LoadDirectoryError reports a content directory that could not be listed.
// It fails the whole load.
type LoadDirectoryError struct {
	Dir string
	Err error
}

func (e *LoadDirectoryError) Error() string {
	return fmt.Sprintf("content: read directory %s: %v", e.Dir, e.Err)
}

func (e *LoadDirectoryError) Unwrap() error { return e.Err }

// ArticleParseError reports a single content file that was rejected.
type ArticleParseError struct {
	File string
	Err  error
}

func (e *ArticleParseError) Error() string {
	return fmt.Sprintf("content: %s: %v", e.File, e.Err)
}

func (e *ArticleParseError) Unwrap() error { return e.Err }
