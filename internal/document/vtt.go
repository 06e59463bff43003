package document

import (
	"bufio"
	"html"
	"io"
	"regexp"
	"strings"

	apperrors "github.com/nguyentantai21042004/meeting-digest/internal/errors"
)

// Matches cue tags such as <v Alice>, </v>, <b>, <c.loud> and inline timestamps.
var vttTagRegex = regexp.MustCompile(`<[^>]*>`)

// ParseVTT returns the payload text of every cue in order. Lines within a cue
// and consecutive cues are both separated by a newline.
func ParseVTT(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", apperrors.Parse("read caption file", err)
		}
		return "", apperrors.Parse("empty caption file", nil)
	}
	header := strings.TrimPrefix(scanner.Text(), "\ufeff")
	if header != "WEBVTT" && !strings.HasPrefix(header, "WEBVTT ") && !strings.HasPrefix(header, "WEBVTT\t") {
		return "", apperrors.Parse("missing WEBVTT header", nil)
	}

	var (
		out   []string
		block []string
	)

	flush := func() {
		if text := cueText(block); text != "" {
			out = append(out, text)
		}
		block = block[:0]
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		block = append(block, line)
	}
	flush()

	if err := scanner.Err(); err != nil {
		return "", apperrors.Parse("read caption file", err)
	}
	if len(out) == 0 {
		return "", apperrors.Parse("caption file has no cues", nil)
	}
	return strings.Join(out, "\n"), nil
}

// cueText extracts the payload of one block. Header-area blocks (NOTE, STYLE,
// REGION) and blocks with no timing line yield "".
func cueText(block []string) string {
	if len(block) == 0 {
		return ""
	}
	switch first := strings.TrimSpace(block[0]); {
	case first == "NOTE" || strings.HasPrefix(first, "NOTE "),
		first == "STYLE", first == "REGION":
		return ""
	}

	timing := -1
	for i, line := range block {
		if strings.Contains(line, "-->") {
			timing = i
			break
		}
	}
	if timing < 0 {
		return ""
	}

	var payload []string
	for _, line := range block[timing+1:] {
		line = html.UnescapeString(vttTagRegex.ReplaceAllString(line, ""))
		if line = strings.TrimSpace(line); line != "" {
			payload = append(payload, line)
		}
	}
	return strings.Join(payload, "\n")
}
