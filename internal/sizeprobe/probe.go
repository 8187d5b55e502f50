// Package sizeprobe answers file-size queries with an explicit unknown
// outcome. Callers that need a size to make a decision must never treat a
// failed probe as a zero-byte file.
package sizeprobe

import (
	"errors"
	"fmt"
	"os"
)

// ErrUnknown is returned when the size of a path cannot be determined.
var ErrUnknown = errors.New("size unknown")

// Size returns the byte size of the regular file at path.
//
// A zero-byte file yields (0, nil). A missing file, a stat failure, or a
// non-regular file yields an error wrapping ErrUnknown; the zero returned
// alongside it is not a valid size.
func Size(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("%w: stat %s: %v", ErrUnknown, path, err)
	}
	if !info.Mode().IsRegular() {
		return 0, fmt.Errorf("%w: %s is not a regular file", ErrUnknown, path)
	}
	return info.Size(), nil
}
