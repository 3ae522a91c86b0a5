/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * UUID normalizer
 */

package main

import (
	"strings"

	"github.com/google/uuid"
)

// UUIDNormalize parses an UUID and then reformats it into
// the standard form (xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx),
// lowercase.
//
// If input is not a valid UUID, it returns an empty string.
// Many spellings are recognized: the standard forms go through
// uuid.Parse, everything else falls back to a tolerant scan
// that only cares about the hexadecimal digits
func UUIDNormalize(s string) string {
	if parsed, err := uuid.Parse(s); err == nil {
		return parsed.String()
	}

	var buf [32]byte
	var cnt int

	in := strings.ToLower(s)
	in = strings.TrimPrefix(in, "urn:")
	in = strings.TrimPrefix(in, "uuid:")

	for i := 0; i < len(in); i++ {
		c := in[i]

		if '0' <= c && c <= '9' || 'a' <= c && c <= 'f' {
			if cnt == 32 {
				return ""
			}

			buf[cnt] = c
			cnt++
		}
	}

	if cnt != 32 {
		return ""
	}

	return string(buf[0:8]) + "-" +
		string(buf[8:12]) + "-" +
		string(buf[12:16]) + "-" +
		string(buf[16:20]) + "-" +
		string(buf[20:32])
}
