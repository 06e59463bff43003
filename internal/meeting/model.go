package meeting

import (
	"path/filepath"
	"strings"
)

// MediaKind is the container type of a recording.
type MediaKind string

const (
	KindVideo MediaKind = "video"
	KindDocx  MediaKind = "docx"
	KindVTT   MediaKind = "vtt"
)

var videoExtensions = map[string]bool{
	".mp4": true, ".mov": true, ".avi": true, ".mkv": true, ".webm": true, ".m4v": true,
}

// KindFromName derives the media kind from a file name extension.
func KindFromName(name string) (MediaKind, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	switch {
	case videoExtensions[ext]:
		return KindVideo, true
	case ext == ".docx":
		return KindDocx, true
	case ext == ".vtt":
		return KindVTT, true
	default:
		return "", false
	}
}

// Recording is a fetched recording available on local disk.
type Recording struct {
	ID   string // file name or remote item id
	Name string
	Path string
	Kind MediaKind
	// Temporary recordings were spooled or downloaded and are removed after use.
	Temporary bool
}

// AudioStream is a mono 16kHz PCM WAV file derived from a video recording.
type AudioStream struct {
	Path string
}

// Transcript is immutable once produced.
type Transcript struct {
	Raw        string
	Normalized string
	Source     MediaKind
}

// Task is one of the five annotation calls made against a summary.
type Task string

const (
	TaskCategory Task = "category"
	TaskEmotion  Task = "emotion"
	TaskIndustry Task = "industry"
	TaskFocus    Task = "focus"
	TaskPlan     Task = "plan"
)

// Tasks lists every annotation task in display order.
var Tasks = []Task{TaskCategory, TaskEmotion, TaskIndustry, TaskFocus, TaskPlan}

// AnnotationKinds are the single-value annotations shown alongside the summary.
var AnnotationKinds = []Task{TaskCategory, TaskEmotion, TaskIndustry, TaskFocus}

// SummaryBundle is the summary plus every annotation, surfaced as a unit.
type SummaryBundle struct {
	Summary     string
	Annotations map[Task]string
	ActionPlan  []string
}

// Complete reports whether the bundle carries a summary, all four
// annotations and a non-empty action plan.
func (b SummaryBundle) Complete() bool {
	if strings.TrimSpace(b.Summary) == "" || len(b.ActionPlan) == 0 {
		return false
	}
	for _, k := range AnnotationKinds {
		if strings.TrimSpace(b.Annotations[k]) == "" {
			return false
		}
	}
	return true
}

// NewBundle assembles a bundle from the stage-2 results keyed by task.
func NewBundle(summary string, results map[Task]string) SummaryBundle {
	annotations := make(map[Task]string, len(AnnotationKinds))
	for _, k := range AnnotationKinds {
		annotations[k] = strings.TrimSpace(results[k])
	}
	return SummaryBundle{
		Summary:     strings.TrimSpace(summary),
		Annotations: annotations,
		ActionPlan:  SplitPlan(results[TaskPlan]),
	}
}

// SplitPlan splits a generated plan into its non-blank lines.
func SplitPlan(plan string) []string {
	var items []string
	for _, line := range strings.Split(plan, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			items = append(items, t)
		}
	}
	return items
}
