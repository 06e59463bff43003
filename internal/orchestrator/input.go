package orchestrator

import (
	"fmt"
	"path/filepath"

	"github.com/nguyentantai21042004/meeting-digest/internal/fetcher"
	"github.com/nguyentantai21042004/meeting-digest/internal/meeting"
)

// Input is the recording a session processes. The set of implementations is
// closed: VideoFile, DocxTranscript, VTTTranscript and RemoteVideo.
type Input interface {
	// Name is the file name shown to the user.
	Name() string
	expectedKind() meeting.MediaKind
}

// VideoFile is a local or uploaded video that will be decoded and transcribed.
type VideoFile struct{ Source fetcher.LocalSource }

// DocxTranscript is a Word document holding a finished transcript.
type DocxTranscript struct{ Source fetcher.LocalSource }

// VTTTranscript is a WebVTT caption track.
type VTTTranscript struct{ Source fetcher.LocalSource }

// RemoteVideo is a video stored in the remote document library.
type RemoteVideo struct{ Item fetcher.RemoteItem }

func (v VideoFile) Name() string      { return sourceName(v.Source) }
func (d DocxTranscript) Name() string { return sourceName(d.Source) }
func (v VTTTranscript) Name() string  { return sourceName(v.Source) }
func (r RemoteVideo) Name() string    { return r.Item.Name }

func (VideoFile) expectedKind() meeting.MediaKind      { return meeting.KindVideo }
func (DocxTranscript) expectedKind() meeting.MediaKind { return meeting.KindDocx }
func (VTTTranscript) expectedKind() meeting.MediaKind  { return meeting.KindVTT }
func (RemoteVideo) expectedKind() meeting.MediaKind    { return meeting.KindVideo }

func sourceName(src fetcher.LocalSource) string {
	if src.Name != "" {
		return src.Name
	}
	return filepath.Base(src.Path)
}

// InputForPath picks the input variant matching a local file's extension.
func InputForPath(path string) (Input, error) {
	src := fetcher.LocalSource{Name: filepath.Base(path), Path: path}

	kind, ok := meeting.KindFromName(path)
	if !ok {
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Base(path))
	}
	switch kind {
	case meeting.KindVideo:
		return VideoFile{Source: src}, nil
	case meeting.KindDocx:
		return DocxTranscript{Source: src}, nil
	default:
		return VTTTranscript{Source: src}, nil
	}
}
