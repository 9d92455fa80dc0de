package source

import (
	"fmt"
	"io"
	"os"
	"slices"

	"fortio.org/safecast"
)

// Flags encode which normalizations were applied to the raw bytes.
type Flags uint8

const (
	// HadBOM indicates a UTF-8 BOM was stripped.
	HadBOM Flags = 1 << iota
	// NormalizedCRLF indicates at least one \r\n was rewritten to \n.
	NormalizedCRLF
)

// ReadFile reads and normalizes a source file from disk.
func ReadFile(path string) ([]byte, Flags, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}
	content, flags := Normalize(content)
	return content, flags, nil
}

// ReadAll drains an already-open handle and normalizes the bytes.
// The handle is borrowed: it is read from its current position and never
// closed here.
func ReadAll(r io.Reader) ([]byte, Flags, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, err
	}
	content, flags := Normalize(content)
	return content, flags, nil
}

// Normalize strips a UTF-8 BOM and rewrites CRLF line endings so that
// line/column accounting is stable across platforms.
func Normalize(content []byte) ([]byte, Flags) {
	var flags Flags
	if c, had := removeBOM(content); had {
		content = c
		flags |= HadBOM
	}
	if c, had := normalizeCRLF(content); had {
		content = c
		flags |= NormalizedCRLF
	}
	return content, flags
}

// normalizeCRLF заменяет все \r\n на \n, не трогая одиночные \r.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false
	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}
	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}
	return content, false
}

// Line returns the 1-based lineNum-th line of content, without the trailing
// newline. Returns "" when the line does not exist.
func Line(content []byte, lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	lenContent, err := safecast.Conv[uint32](len(content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}

	var start uint32
	cur := uint32(1)
	for cur < lineNum {
		for start < lenContent && content[start] != '\n' {
			start++
		}
		if start >= lenContent {
			return ""
		}
		start++ // съедаем \n
		cur++
	}

	end := start
	for end < lenContent && content[end] != '\n' {
		end++
	}
	return string(content[start:end])
}
