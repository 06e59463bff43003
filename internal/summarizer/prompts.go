package summarizer

import (
	"fmt"

	"github.com/nguyentantai21042004/meeting-digest/internal/llm"
	"github.com/nguyentantai21042004/meeting-digest/internal/meeting"
)

const summarySystemPrompt = "You are an expert assistant that can summarize meetings."

const summaryUserPrompt = "Please provide a detailed summary of the following Online Meet recording in a paragraph:\n" +
	" TEXT: %s\n" +
	"Include key decisions, action items, and any notable insights discussed."

const annotationContext = "Here is the detailed summary of the meeting: %s"

var annotationQuestions = map[meeting.Task]string{
	meeting.TaskCategory: "Type of meeting (e.g., Sales pitch, Team meeting, Project update, Client meeting, etc.). Choose one from the options provided in a word.",
	meeting.TaskEmotion:  "Emotion or tone conveyed in this meeting? (e.g., Professional, enthusiastic, urgent, persuasive, etc.). Choose one from the options provided in a word.",
	meeting.TaskIndustry: "Industry related to this meeting? (e.g., Technology, healthcare, finance, etc.). Choose one from the options provided in a word.",
	meeting.TaskFocus:    "Focus of this meeting? (e.g., Introducing a new product, discussing performance, setting goals, etc.). Choose one from the options provided in a word.",
	meeting.TaskPlan:     "Please outline a brief plan of action based on the topics discussed. Limit the plan to no more than five points, with each point consisting of no more than 1 or 2 lines.",
}

func summaryRequest(transcript string) llm.Request {
	return llm.Request{
		System: summarySystemPrompt,
		User:   fmt.Sprintf(summaryUserPrompt, transcript),
	}
}

func annotationRequest(task meeting.Task, summary string) llm.Request {
	system := fmt.Sprintf(annotationContext, summary)
	if task == meeting.TaskPlan {
		system += "\nBased on this summary, what is the proposed plan of action?"
	}
	return llm.Request{System: system, User: annotationQuestions[task]}
}
