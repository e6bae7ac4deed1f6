/* ippwire - IPP wire format codec (RFC 2910, RFC 3382)
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Glob-style pattern matching
 */

package ippwire

// GlobMatch matches string against glob-style pattern.
// Pattern may contain wildcards and has a following syntax:
//
//	?   - matches exactly one character
//	*   - matches any sequence of characters
//	\C  - matches character C
//	C   - matches character C (C is not *, ? or \)
//
// Dictionary uses it to match attribute names against patterns
// like "*-supported".
//
// It returns the "matching weight", a counter of matched
// non-wildcard characters: the more the weight, the more specific
// the pattern is. If there is no match, it returns -1.
func GlobMatch(str, pattern string) int {
	return globMatch(str, pattern, 0)
}

// globMatch does the actual work of GlobMatch() function
func globMatch(str, pattern string, weight int) int {
	for pattern != "" {
		p := pattern[0]
		pattern = pattern[1:]

		if p == '*' {
			for pattern != "" && pattern[0] == '*' {
				pattern = pattern[1:]
			}

			if pattern == "" {
				return weight
			}

			for i := 0; i < len(str); i++ {
				if w := globMatch(str[i:], pattern, weight); w >= 0 {
					return w
				}
			}

			return -1
		}

		if str == "" {
			return -1
		}

		switch p {
		case '?':
			str = str[1:]
			continue

		case '\\':
			if pattern == "" {
				return -1
			}
			p, pattern = pattern[0], pattern[1:]
		}

		if str[0] != p {
			return -1
		}

		str = str[1:]
		weight++
	}

	if str != "" {
		return -1
	}

	return weight
}
