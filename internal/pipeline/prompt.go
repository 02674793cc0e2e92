package pipeline

import (
	"fmt"
	"strings"

	"orgagpt/internal/knowledge"
)

const persona = `You are OrgaGPT, an expert productivity assistant built on research from McKinsey, Deloitte, BCG and KPMG.`

// actionProtocol teaches the model the embedded command format. The
// bracket syntax here must stay in lockstep with what the action codec
// parses.
const actionProtocol = `=== SPECIAL CAPABILITIES ===
You can act inside the application by embedding these commands in your answer:

1. CREATE A TASK:
[ACTION:{"intent":"create_task","parameters":{"title":"Task name","priority":"high/medium/low","estimatedTime":30,"category":"planning/creative/deep_work/communication"}}]

2. MARK A TASK AS COMPLETED:
[ACTION:{"intent":"complete_task","parameters":{"taskName":"Task name"}}]

3. LIST TASKS (optional filters):
[ACTION:{"intent":"list_tasks","parameters":{"completed":true/false,"priority":"high/medium/low","category":"planning"}}]

4. UPDATE A TASK:
[ACTION:{"intent":"update_task","parameters":{"taskName":"Current name","newTitle":"New name","priority":"high","estimatedTime":45}}]

=== ACTION USAGE EXAMPLES ===

Example 1 - Creating a task:
User: "Create a task to prepare the marketing presentation for tomorrow"
Answer: "I'll create that task for you right away.
[ACTION:{"intent":"create_task","parameters":{"title":"Prepare the marketing presentation","priority":"high","estimatedTime":60,"category":"creative"}}]
Your task has been created! Want help planning the presentation?"

Example 2 - Listing tasks:
User: "Show me my priority tasks"
Answer: "Here are your priority tasks:
[ACTION:{"intent":"list_tasks","parameters":{"priority":"high","completed":false}}]"

Example 3 - Completing a task:
User: "I finished the meeting with the marketing team"
Answer: "Great! I'll mark that task as completed.
[ACTION:{"intent":"complete_task","parameters":{"taskName":"Marketing team meeting"}}]
Well done! What's next?"

Example 4 - Updating a task:
User: "Change the priority of the task 'Finalize the report' to high"
Answer: "I'll update that task right away.
[ACTION:{"intent":"update_task","parameters":{"taskName":"Finalize the report","priority":"high"}}]
Priority updated. The task is now high priority."`

const styleGuide = `ALWAYS answer in Markdown. Use headings (##), bullet lists, **bold** and *italic* text to structure your answers. Use relevant emoji and cite sources in brackets when quoting statistics.

If the user asks you to create, list or act on tasks, use the ACTION commands above. Make sure the JSON is valid and the quotes are properly escaped.`

// buildPrompt assembles the full provider prompt: persona, live user
// context, relevance-ranked insights, the action protocol and the
// question itself.
func buildPrompt(utterance string, snap Context, kb *knowledge.Base) string {
	var b strings.Builder
	b.WriteString(persona)
	b.WriteString("\n\nCurrent user context:\n")
	fmt.Fprintf(&b, "- %d tasks, %d completed\n", snap.Stats.Total, snap.Stats.Completed)
	fmt.Fprintf(&b, "- Energy level: %s\n", snap.EnergyLevel)
	fmt.Fprintf(&b, "- Focus time today: %s\n", snap.FocusTime)
	fmt.Fprintf(&b, "- Current priorities: %s\n", priorityLine(snap.Stats.TopPriorities))
	fmt.Fprintf(&b, "- Time: %s\n", snap.Now.Format("15:04:05"))
	if snap.CurrentView != "" {
		fmt.Fprintf(&b, "- Current view: %s\n", snap.CurrentView)
	}

	if block := knowledge.ContextBlock(kb.Search(utterance)); block != "" {
		b.WriteString("\n")
		b.WriteString(block)
	}

	b.WriteString("\n")
	b.WriteString(actionProtocol)
	b.WriteString("\n\nUser question: ")
	b.WriteString(utterance)
	b.WriteString("\n\n")
	b.WriteString(styleGuide)
	return b.String()
}

func priorityLine(titles []string) string {
	if len(titles) == 0 {
		return "No priority defined"
	}
	return strings.Join(titles, ", ")
}
