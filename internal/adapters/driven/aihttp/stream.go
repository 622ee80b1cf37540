package aihttp

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
)

// streamChunk is one data line of the generation stream.
type streamChunk struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// doneMarker terminates some provider streams in place of a done flag.
const doneMarker = "[DONE]"

// accumulateStream reads an SSE-style stream of "data: {...}" lines and
// concatenates the response fragments. Blank lines and non-data lines
// are ignored. Reading stops at the done marker, an explicit done flag,
// or stream close. On a read error the text accumulated so far is
// returned with the error so callers can decide whether a partial draft
// is worth keeping.
func accumulateStream(r io.Reader) (string, error) {
	var b strings.Builder

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		data, ok := strings.CutPrefix(line, "data:")
		if !ok {
			continue
		}
		data = strings.TrimSpace(data)
		if data == doneMarker {
			break
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			// Some providers send bare text fragments between JSON lines;
			// keep them rather than failing the whole stream.
			b.WriteString(data)
			continue
		}
		b.WriteString(chunk.Response)
		if chunk.Done {
			break
		}
	}

	return b.String(), scanner.Err()
}
