package distributor

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/nguyentantai21042004/meeting-digest/internal/meeting"
)

var bodyTemplate = template.Must(template.New("body").Parse(`
<div class="additional-details"><strong>Category</strong>: {{.Category}}</div>
<div class="additional-details"><strong>Emotion</strong>: {{.Emotion}}</div>
<div class="additional-details"><strong>Industry</strong>: {{.Industry}}</div>
<div class="additional-details"><strong>Focus</strong>: {{.Focus}}</div>
<p><strong>Summary:</strong></p>
<div class="summary-box">{{.Summary}}</div>
<div class="section-heading plan-of-action"><p><strong>Plan of Action:</strong></p></div>
<div class="plan-of-action-item">{{range $i, $item := .Plan}}{{if $i}}<br>{{end}}{{$item}}{{end}}</div>
`))

type bodyData struct {
	Category string
	Emotion  string
	Industry string
	Focus    string
	Summary  string
	Plan     []string
}

// FormatBody renders the HTML message body. Model output is escaped.
func FormatBody(bundle meeting.SummaryBundle) (string, error) {
	data := bodyData{
		Category: bundle.Annotations[meeting.TaskCategory],
		Emotion:  bundle.Annotations[meeting.TaskEmotion],
		Industry: bundle.Annotations[meeting.TaskIndustry],
		Focus:    bundle.Annotations[meeting.TaskFocus],
		Summary:  bundle.Summary,
		Plan:     bundle.ActionPlan,
	}

	var buf bytes.Buffer
	if err := bodyTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render body: %w", err)
	}
	return buf.String(), nil
}
