package document

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	apperrors "github.com/nguyentantai21042004/meeting-digest/internal/errors"
)

const (
	nsWordML = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsCompat = "http://schemas.openxmlformats.org/markup-compatibility/2006"

	documentPart = "word/document.xml"
)

// ParseDocx returns the text of every paragraph in document order, one per
// line. Empty paragraphs are kept as empty lines.
func ParseDocx(r io.ReaderAt, size int64) (string, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return "", apperrors.Parse("not a docx container", err)
	}

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == documentPart {
			part = f
			break
		}
	}
	if part == nil {
		return "", apperrors.Parse("missing "+documentPart, nil)
	}

	rc, err := part.Open()
	if err != nil {
		return "", apperrors.Parse("open "+documentPart, err)
	}
	defer rc.Close()

	lines, err := paragraphs(rc)
	if err != nil {
		return "", apperrors.Parse("malformed "+documentPart, err)
	}
	return strings.Join(lines, "\n"), nil
}

// paragraphs walks the WordprocessingML token stream. Alternate-content
// fallbacks are skipped so text boxes are not read twice.
func paragraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		lines    []string
		current  strings.Builder
		depth    int // open w:p elements
		run      int // open w:r elements
		inText   bool
		fallback int
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space == nsCompat && t.Name.Local == "Fallback" {
				fallback++
			}
			if fallback > 0 || t.Name.Space != nsWordML {
				continue
			}
			switch t.Name.Local {
			case "p":
				depth++
				if depth == 1 {
					current.Reset()
				}
			case "r":
				run++
			case "t":
				inText = true
			case "tab":
				// tab stops in w:pPr/w:tabs share the name
				if run > 0 {
					current.WriteByte('\t')
				}
			case "br", "cr":
				if run > 0 {
					current.WriteByte(' ')
				}
			}

		case xml.EndElement:
			if t.Name.Space == nsCompat && t.Name.Local == "Fallback" {
				fallback--
				continue
			}
			if fallback > 0 || t.Name.Space != nsWordML {
				continue
			}
			switch t.Name.Local {
			case "r":
				run--
			case "t":
				inText = false
			case "p":
				depth--
				if depth == 0 {
					lines = append(lines, current.String())
				}
			}

		case xml.CharData:
			if inText && fallback == 0 {
				current.Write(t)
			}
		}
	}

	return lines, nil
}
