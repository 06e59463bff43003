// Package output renders pipeline progress and results for the terminal.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/nguyentantai21042004/meeting-digest/internal/fetcher"
	"github.com/nguyentantai21042004/meeting-digest/internal/meeting"
	"github.com/nguyentantai21042004/meeting-digest/internal/orchestrator"
)

type Formatter struct {
	w io.Writer
}

func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

// Transition prints progress for a session state change.
func (f *Formatter) Transition(from, to orchestrator.State) {
	switch to {
	case orchestrator.StateFetching:
		fmt.Fprintf(f.w, "📥 Fetching recording...\n")
	case orchestrator.StateExtracting:
		if from == orchestrator.StateFetching {
			fmt.Fprintf(f.w, "🎞️  Extracting...\n")
		}
	case orchestrator.StateTranscribing:
		fmt.Fprintf(f.w, "📝 Transcribing audio...\n")
	case orchestrator.StateSummarizing:
		fmt.Fprintf(f.w, "🤖 Generating summary...\n")
	case orchestrator.StateSending:
		fmt.Fprintf(f.w, "📧 Sending email...\n")
	case orchestrator.StateFailed:
		fmt.Fprintf(f.w, "❌ Processing failed\n")
	}
}

// Bundle prints the summary and its annotations.
func (f *Formatter) Bundle(b meeting.SummaryBundle) {
	fmt.Fprintf(f.w, "\n== Meeting Summary ==\n\n%s\n\n", b.Summary)
	fmt.Fprintf(f.w, "== Additional Details ==\n\n")
	fmt.Fprintf(f.w, "  Category: %s\n", b.Annotations[meeting.TaskCategory])
	fmt.Fprintf(f.w, "  Emotion:  %s\n", b.Annotations[meeting.TaskEmotion])
	fmt.Fprintf(f.w, "  Industry: %s\n", b.Annotations[meeting.TaskIndustry])
	fmt.Fprintf(f.w, "  Focus:    %s\n", b.Annotations[meeting.TaskFocus])
	fmt.Fprintf(f.w, "\n== Plan of Action ==\n\n")
	for _, item := range b.ActionPlan {
		fmt.Fprintf(f.w, "  %s\n", item)
	}
	fmt.Fprintln(f.w)
}

func (f *Formatter) RemoteList(items []fetcher.RemoteItem) {
	if len(items) == 0 {
		f.Info("No recordings found")
		return
	}
	fmt.Fprintf(f.w, "📁 Remote recordings:\n\n")
	for _, it := range items {
		fmt.Fprintf(f.w, "  %s (%s)\n", it.Name, formatSize(it.Size))
	}
}

func (f *Formatter) Prompt(msg string) {
	fmt.Fprintf(f.w, "%s ", strings.TrimSpace(msg))
}

func (f *Formatter) Error(msg string) {
	fmt.Fprintf(f.w, "❌ %s\n", msg)
}

func (f *Formatter) Info(msg string) {
	fmt.Fprintf(f.w, "ℹ️  %s\n", msg)
}

func (f *Formatter) Success(msg string) {
	fmt.Fprintf(f.w, "✅ %s\n", msg)
}

func (f *Formatter) Warning(msg string) {
	fmt.Fprintf(f.w, "⚠️  %s\n", msg)
}

func (f *Formatter) SetupCheck(name string, ok bool, detail string) {
	if ok {
		fmt.Fprintf(f.w, "  ✅ %s: %s\n", name, detail)
	} else {
		fmt.Fprintf(f.w, "  ❌ %s: %s\n", name, detail)
	}
}

func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
