package relkit

import (
	"bufio"
	"fmt"
	"os"
)

// writeIndex renders the distribution index to path. The index is derived
// entirely from the published platform set: one section per platform that
// published at least one file, in platform-key order, each file annotated
// with its type. The rendering is deterministic, so unchanged input yields
// a byte-identical index.
func writeIndex(path, tool string, platforms []PublishedPlatform, aliases []PublishedAlias) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create index %s: %w", path, err)
	}
	w := bufio.NewWriter(f)

	fmt.Fprintf(w, "# %s downloads\n", tool)

	for _, p := range platforms {
		heading := p.DisplayName
		if heading == "" {
			heading = p.Key
		}
		if p.Platform.OS != "" && p.Platform.Architecture != "" {
			heading = fmt.Sprintf("%s (%s/%s)", heading, p.Platform.OS, p.Platform.Architecture)
		}
		fmt.Fprintf(w, "\n## %s\n\n", heading)

		fmt.Fprintf(w, "| File | Type | Size (bytes) |\n")
		fmt.Fprintf(w, "| --- | --- | --- |\n")
		for _, file := range p.Files {
			fmt.Fprintf(w, "| `%s/%s` | %s | %d |\n", p.Key, file.Name, file.Type, file.Size)
		}

		if script := findFileOfType(p.Files, FileTypeScript); script != "" {
			fmt.Fprintf(w, "\nThis platform ships as split parts. Download every file above into one directory, then run `sh %s` to reassemble the archive.\n", script)
		}
	}

	if len(aliases) > 0 {
		fmt.Fprintf(w, "\n## Legacy names\n\n")
		for _, a := range aliases {
			fmt.Fprintf(w, "- `%s` points at `%s`\n", a.Name, a.Target)
		}
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write index %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close index %s: %w", path, err)
	}
	return nil
}

// findFileOfType returns the first file of the given type, or "".
func findFileOfType(files []PublishedFile, t FileType) string {
	for _, f := range files {
		if f.Type == t {
			return f.Name
		}
	}
	return ""
}
