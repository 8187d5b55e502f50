package relkit

import "errors"

// Sentinel errors for split, reconstruction and aggregation failures.
var (
	// ErrSizeUnknown is returned when the size of a required file cannot be
	// determined. A zero-byte file is not an error; an unknowable size is.
	ErrSizeUnknown = errors.New("relkit: size unknown")

	// ErrCapExceeded is returned when a written part still exceeds the
	// configured size cap. This indicates cap misconfiguration and is not
	// retryable.
	ErrCapExceeded = errors.New("relkit: part exceeds size cap")

	// ErrTooManyParts is returned when the archive would split into more
	// parts than the suffix scheme can order.
	ErrTooManyParts = errors.New("relkit: too many parts for suffix scheme")

	// ErrNoParts is returned when reconstruction finds no part files
	// matching the expected pattern.
	ErrNoParts = errors.New("relkit: no part files found")

	// ErrIntegrity is returned when a reconstructed archive fails its
	// compression self-test.
	ErrIntegrity = errors.New("relkit: reconstructed archive failed integrity check")

	// ErrPartMismatch is returned when the part set on disk disagrees with
	// the manifest describing it.
	ErrPartMismatch = errors.New("relkit: parts do not match manifest")

	// ErrManifestSchema is returned when a manifest declares an unsupported
	// schema version.
	ErrManifestSchema = errors.New("relkit: unsupported manifest schema version")
)
