package relkit

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// scriptSuffix is the suffix convention shared by ScriptName and
// ArchiveNameFromScript.
const scriptSuffix = "-reconstruct.sh"

// ScriptName returns the reconstruction script file name for an archive:
// <archive>-reconstruct.sh.
func ScriptName(archiveName string) string {
	return archiveName + scriptSuffix
}

// ArchiveNameFromScript derives the archive base name from a reconstruction
// script's file name by stripping the script suffix. The emitted script
// performs the same derivation on its own $0, so the two can never
// disagree. ok is false when name does not follow the convention.
func ArchiveNameFromScript(name string) (archive string, ok bool) {
	base := filepath.Base(name)
	if !strings.HasSuffix(base, scriptSuffix) || base == scriptSuffix {
		return "", false
	}
	return strings.TrimSuffix(base, scriptSuffix), true
}

// The script is POSIX sh so it runs wherever the parts land, with no Go
// toolchain or relkit binary required. Its behavior must stay in lockstep
// with Reconstruct.
var scriptTemplate = template.Must(template.New("reconstruct").Parse(`#!/bin/sh
# Reassembles {{.Archive}} from its split parts.
# Generated by relkit. Do not edit.
set -eu

self="$(basename "$0")"
archive="${self%-reconstruct.sh}"

# Glob expansion is sorted, so the parts land in sequence order even
# when the archive name contains spaces.
set -- "${archive}".part*
if [ ! -e "$1" ]; then
	echo "error: no part files matching ${archive}.part* in $(pwd)" >&2
	exit 1
fi

rm -f -- "${archive}"
for part in "$@"; do
	cat -- "${part}" >> "${archive}"
done
{{if .Checker}}
if command -v {{.Checker}} >/dev/null 2>&1; then
	{{.Checker}} -t -- "${archive}"
else
	echo "warning: {{.Checker}} not found, skipping integrity check" >&2
fi
{{end}}
echo "Reconstructed ${archive}"
echo "Extract with: tar -xf ${archive}"
echo "Remove parts with: rm -f ${archive}.part*"
`))

type scriptData struct {
	Archive string
	Checker string
}

// checkerCommand returns the command used for the format's stream
// self-test, or "" when no standalone checker exists for the format.
func checkerCommand(comp Compression) string {
	switch comp {
	case CompressionZstd:
		return "zstd"
	case CompressionXz:
		return "xz"
	case CompressionGzip:
		return "gzip"
	default:
		return ""
	}
}

// EmitScript writes the standalone reconstruction script for archiveName
// into dir and returns the written path. The script is executable and
// depends only on POSIX sh plus, optionally, the format's compression tool
// for the integrity check.
func EmitScript(dir, archiveName string, comp Compression) (string, error) {
	var buf bytes.Buffer
	data := scriptData{Archive: archiveName, Checker: checkerCommand(comp)}
	if err := scriptTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render reconstruction script: %w", err)
	}
	path := filepath.Join(dir, ScriptName(archiveName))
	if err := os.WriteFile(path, buf.Bytes(), 0o755); err != nil {
		return "", fmt.Errorf("write reconstruction script: %w", err)
	}
	return path, nil
}
