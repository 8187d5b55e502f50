// Package suffix generates part-file suffixes whose lexicographic order
// equals their numeric sequence order.
package suffix

import "fmt"

// Width is the fixed suffix length in characters.
const Width = 2

// Max is the largest part count the scheme can order (aa..zz).
const Max = 26 * 26

// Gen returns the suffix for the i-th part (zero-based): "aa", "ab", ...,
// "zz". Fixed width keeps lexicographic sort identical to sequence order
// for every part count up to Max; bare unpadded integers would not survive
// past nine parts.
func Gen(i int) (string, error) {
	if i < 0 || i >= Max {
		return "", fmt.Errorf("part index %d out of range [0,%d)", i, Max)
	}
	return string([]byte{'a' + byte(i/26), 'a' + byte(i%26)}), nil
}
