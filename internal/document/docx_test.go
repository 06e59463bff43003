package document

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gomutex/godocx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/nguyentantai21042004/meeting-digest/internal/errors"
	"github.com/nguyentantai21042004/meeting-digest/internal/logger"
	"github.com/nguyentantai21042004/meeting-digest/internal/meeting"
)

const docHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"
            xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006"><w:body>`

const docFooter = `<w:sectPr/></w:body></w:document>`

func buildDocx(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(documentPart)
	require.NoError(t, err)
	_, err = w.Write([]byte(docHeader + body + docFooter))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func parseBytes(t *testing.T, data []byte) (string, error) {
	t.Helper()
	return ParseDocx(bytes.NewReader(data), int64(len(data)))
}

func TestParseDocxParagraphs(t *testing.T) {
	data := buildDocx(t, `<w:p><w:r><w:t>A</w:t></w:r></w:p>`+
		`<w:p><w:r><w:t>B</w:t></w:r></w:p>`+
		`<w:p><w:r><w:t>C</w:t></w:r></w:p>`)

	out, err := parseBytes(t, data)
	require.NoError(t, err)
	assert.Equal(t, "A\nB\nC", out)
}

func TestParseDocxRuns(t *testing.T) {
	data := buildDocx(t, `<w:p><w:r><w:t xml:space="preserve">Hello </w:t></w:r><w:r><w:rPr><w:b/></w:rPr><w:t>team</w:t></w:r></w:p>`+
		`<w:p/>`+
		`<w:p><w:r><w:t>one</w:t><w:tab/><w:t>two</w:t><w:br/><w:t>three</w:t></w:r></w:p>`)

	out, err := parseBytes(t, data)
	require.NoError(t, err)
	assert.Equal(t, "Hello team\n\none\ttwo three", out)
}

func TestParseDocxIgnoresTabStops(t *testing.T) {
	data := buildDocx(t, `<w:p><w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/><w:tab w:val="right" w:pos="9360"/></w:tabs></w:pPr>`+
		`<w:r><w:t>Alice: hello</w:t></w:r></w:p>`+
		`<w:p><w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr><w:r><w:t>Bob:</w:t><w:tab/><w:t>hi</w:t></w:r></w:p>`)

	out, err := parseBytes(t, data)
	require.NoError(t, err)
	assert.Equal(t, "Alice: hello\nBob:\thi", out)
}

func TestParseDocxSkipsFallback(t *testing.T) {
	data := buildDocx(t, `<w:p><w:r><mc:AlternateContent>`+
		`<mc:Choice><w:t>box</w:t></mc:Choice>`+
		`<mc:Fallback><w:p><w:r><w:t>box</w:t></w:r></w:p></mc:Fallback>`+
		`</mc:AlternateContent></w:r></w:p>`)

	out, err := parseBytes(t, data)
	require.NoError(t, err)
	assert.Equal(t, "box", out)
}

func TestParseDocxMalformed(t *testing.T) {
	_, err := parseBytes(t, []byte("not a zip"))
	assert.True(t, apperrors.IsKind(err, apperrors.KindParse))

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, _ = zw.Create("word/styles.xml")
	require.NoError(t, zw.Close())
	_, err = parseBytes(t, buf.Bytes())
	assert.True(t, apperrors.IsKind(err, apperrors.KindParse))

	_, err = parseBytes(t, buildDocx(t, `<w:p><w:r><w:t>unterminated`))
	assert.True(t, apperrors.IsKind(err, apperrors.KindParse))
}

func TestParseGodocxDocument(t *testing.T) {
	doc, err := godocx.NewDocument()
	require.NoError(t, err)
	doc.AddParagraph("A")
	doc.AddParagraph("B")
	doc.AddParagraph("C")

	path := filepath.Join(t.TempDir(), "notes.docx")
	require.NoError(t, doc.SaveTo(path))

	p := New(logger.Nop())
	tr, err := p.Parse(context.Background(), meeting.Recording{Name: "notes.docx", Path: path, Kind: meeting.KindDocx})
	require.NoError(t, err)
	assert.Equal(t, "A\nB\nC", strings.Trim(tr.Raw, "\n"))
	assert.Equal(t, tr.Raw, tr.Normalized)
	assert.Equal(t, meeting.KindDocx, tr.Source)
}

func TestParseRejectsVideo(t *testing.T) {
	p := New(logger.Nop())
	_, err := p.Parse(context.Background(), meeting.Recording{Name: "call.mp4", Kind: meeting.KindVideo})
	assert.True(t, apperrors.IsKind(err, apperrors.KindParse))
}

func TestParseEmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blank.docx")
	require.NoError(t, os.WriteFile(path, buildDocx(t, `<w:p/><w:p/>`), 0o644))

	_, err := New(logger.Nop()).Parse(context.Background(), meeting.Recording{Name: "blank.docx", Path: path, Kind: meeting.KindDocx})
	assert.True(t, apperrors.IsKind(err, apperrors.KindParse))
}
