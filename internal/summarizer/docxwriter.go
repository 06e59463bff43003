package summarizer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/meeting-digest/internal/meeting"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

var (
	reHeading = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet  = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
)

var annotationLabels = map[meeting.Task]string{
	meeting.TaskCategory: "Category",
	meeting.TaskEmotion:  "Emotion",
	meeting.TaskIndustry: "Industry",
	meeting.TaskFocus:    "Focus",
}

// WriteReport renders a complete bundle to a styled docx file.
func WriteReport(bundle meeting.SummaryBundle, title, outputPath string) error {
	if !bundle.Complete() {
		return fmt.Errorf("write report: bundle is incomplete")
	}

	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)

	for _, task := range meeting.AnnotationKinds {
		p := doc.AddParagraph("")
		addStyledRun(p, annotationLabels[task]+": ", true, fontSize)
		addRichText(p, bundle.Annotations[task])
	}

	addStyledRun(doc.AddParagraph(""), "Summary", true, headingSize(2))
	renderMarkdown(doc, bundle.Summary)

	addStyledRun(doc.AddParagraph(""), "Plan of Action", true, headingSize(2))
	for _, item := range bundle.ActionPlan {
		addRichText(doc.AddParagraph(""), item)
	}

	return doc.SaveTo(outputPath)
}

// renderMarkdown appends model-formatted markdown as styled paragraphs.
func renderMarkdown(doc *docx.RootDoc, markdown string) {
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || trimmed == "---" {
			continue
		}

		if m := reHeading.FindStringSubmatch(trimmed); m != nil {
			addStyledRun(doc.AddParagraph(""), m[2], true, headingSize(len(m[1])))
			continue
		}

		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			addRichText(doc.AddParagraph(""), "• "+m[1])
			continue
		}

		// numbered items keep their numbering
		addRichText(doc.AddParagraph(""), trimmed)
	}
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 15
	case 3:
		return 14
	default:
		return fontSize
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	text = cleanMarkdownInline(text)
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			clean := cleanMarkdownInline(part)
			p.AddText(clean).Font(fontName).Size(fontSize).Color("000000")
		}
		if i < len(matches) {
			clean := cleanMarkdownInline(matches[i][1])
			p.AddText(clean).Font(fontName).Size(fontSize).Color("000000").Bold(true)
		}
	}
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
