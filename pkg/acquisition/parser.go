package acquisition

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ParseSamples decodes a frame payload into ordered ADC sample values. The
// payload must be UTF-8 text with one decimal integer per line. Any
// malformed line is an error identifying that line; padding or skipping
// would silently shift every downstream frequency bin.
func ParseSamples(payload []byte) ([]uint16, error) {
	if !utf8.Valid(payload) {
		return nil, NewError(StageDecode, ErrCodeDecode, "frame payload is not valid UTF-8 text", nil)
	}

	lines := strings.Split(string(payload), "\n")
	// The final sample line is newline-terminated, leaving one empty
	// trailing element after the split.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	samples := make([]uint16, 0, len(lines))
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		v, err := strconv.ParseUint(line, 10, 16)
		if err != nil {
			return nil, NewError(StageParse, ErrCodeParse,
				fmt.Sprintf("sample line %d is not an unsigned integer: %q", i+1, line), err)
		}
		samples = append(samples, uint16(v))
	}
	return samples, nil
}
