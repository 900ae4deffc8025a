// internal/errors/errors.go
package errors

import (
	"errors"
	"fmt"
)

// ErrReadmeNotFound is returned when a repository has no README. It is a
// domain outcome, distinct from transport errors; callers test for it with
// errors.Is.
var ErrReadmeNotFound = errors.New("readme not found")

// ErrUnknownEncoding is returned when a README payload declares a transport
// encoding other than base64.
var ErrUnknownEncoding = errors.New("unknown encoding for README content")

// ErrInvalidRepoPath is returned when a repository reference is not in
// 'owner/name' form.
type ErrInvalidRepoPath struct {
	Path string
}

func (e *ErrInvalidRepoPath) Error() string {
	return fmt.Sprintf("invalid repository path: %q, expected 'owner/name'", e.Path)
}
