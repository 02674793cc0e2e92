package action

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"orgagpt/internal/task"
)

// Dispatcher interprets directives against the task store. Each
// directive is an isolated unit: a failure in one produces a chat
// message and never aborts the rest of the batch.
type Dispatcher struct {
	store  *task.Store
	logger *zap.Logger
}

// NewDispatcher returns a dispatcher bound to the given store.
func NewDispatcher(store *task.Store, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{store: store, logger: logger.Named("dispatch")}
}

// Dispatch executes the directives sequentially in extraction order
// and returns one confirmation or negative-result message per
// directive that produces user-visible output. Unknown intents are
// logged and produce nothing.
func (d *Dispatcher) Dispatch(directives []Directive) []string {
	var messages []string
	for _, dir := range directives {
		switch dir.Intent {
		case IntentCreateTask:
			if msg := d.createTask(dir.Parameters); msg != "" {
				messages = append(messages, msg)
			}
		case IntentCompleteTask:
			if msg := d.completeTask(dir.Parameters); msg != "" {
				messages = append(messages, msg)
			}
		case IntentListTasks:
			messages = append(messages, d.listTasks(dir.Parameters))
		case IntentUpdateTask:
			if msg := d.updateTask(dir.Parameters); msg != "" {
				messages = append(messages, msg)
			}
		default:
			d.logger.Warn("ignoring unknown action intent", zap.String("intent", dir.Intent))
		}
	}
	return messages
}

func (d *Dispatcher) createTask(params map[string]interface{}) string {
	title := paramString(params, "title")
	if title == "" {
		d.logger.Warn("create_task without title, skipping")
		return ""
	}

	r := task.Record{
		Title:         title,
		Priority:      task.Priority(paramString(params, "priority")),
		EstimatedTime: paramInt(params, "estimatedTime", 0),
		Category:      paramString(params, "category"),
		Quadrant:      paramInt(params, "quadrant", 0),
	}
	if r.Category == "" {
		r.Category = "general"
	}

	created, err := d.store.Append(r)
	if err != nil {
		d.logger.Error("create_task failed", zap.String("title", title), zap.Error(err))
		return fmt.Sprintf("⚠️ I couldn't create the task %q: %v", title, err)
	}
	return fmt.Sprintf("✅ I've created the task **%s** with **%s** priority and an estimated time of **%d minutes**.",
		created.Title, created.Priority, created.EstimatedTime)
}

func (d *Dispatcher) completeTask(params map[string]interface{}) string {
	name := paramString(params, "taskName")
	if name == "" {
		d.logger.Warn("complete_task without taskName, skipping")
		return ""
	}

	found, ok := d.store.FindByTitle(name)
	if !ok {
		return notFoundMessage(name)
	}
	done := true
	if _, err := d.store.Update(found.ID, task.Patch{Completed: &done}); err != nil {
		d.logger.Error("complete_task failed", zap.Int64("id", found.ID), zap.Error(err))
		return fmt.Sprintf("⚠️ I couldn't complete the task %q: %v", found.Title, err)
	}
	return fmt.Sprintf("✅ I've marked the task **%s** as completed.", found.Title)
}

func (d *Dispatcher) listTasks(params map[string]interface{}) string {
	completed, hasCompleted := paramBool(params, "completed")
	priority := paramString(params, "priority")
	category := paramString(params, "category")

	matches := d.store.Filter(func(r task.Record) bool {
		if hasCompleted && r.Completed != completed {
			return false
		}
		if priority != "" && string(r.Priority) != priority {
			return false
		}
		if category != "" && r.Category != category {
			return false
		}
		return true
	})

	if len(matches) == 0 {
		return "📋 No tasks match those criteria."
	}

	var b strings.Builder
	b.WriteString("📋 **Here are the requested tasks:**\n\n")
	for _, r := range matches {
		b.WriteString(formatDigestLine(r))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func (d *Dispatcher) updateTask(params map[string]interface{}) string {
	name := paramString(params, "taskName")
	if name == "" {
		d.logger.Warn("update_task without taskName, skipping")
		return ""
	}

	found, ok := d.store.FindByTitle(name)
	if !ok {
		return notFoundMessage(name)
	}

	var patch task.Patch
	if v := paramString(params, "newTitle"); v != "" {
		patch.Title = &v
	}
	if v := paramString(params, "priority"); v != "" {
		p := task.Priority(v)
		patch.Priority = &p
	}
	if v := paramInt(params, "estimatedTime", 0); v > 0 {
		patch.EstimatedTime = &v
	}
	if v := paramString(params, "category"); v != "" {
		patch.Category = &v
	}
	if v := paramInt(params, "quadrant", 0); v > 0 {
		patch.Quadrant = &v
	}

	updated, err := d.store.Update(found.ID, patch)
	if err != nil {
		d.logger.Error("update_task failed", zap.Int64("id", found.ID), zap.Error(err))
		return fmt.Sprintf("⚠️ I couldn't update the task %q: %v", found.Title, err)
	}
	return fmt.Sprintf("✅ I've updated the task **%s**.", updated.Title)
}

func notFoundMessage(name string) string {
	return fmt.Sprintf("❓ I couldn't find a task matching %q.", name)
}

// formatDigestLine renders one task as a digest row: status glyph,
// title, priority glyph, duration and category.
func formatDigestLine(r task.Record) string {
	status := "⬜"
	if r.Completed {
		status = "✅"
	}
	var prio string
	switch r.Priority {
	case task.PriorityHigh:
		prio = "🔴"
	case task.PriorityMedium:
		prio = "🟠"
	case task.PriorityLow:
		prio = "🟢"
	default:
		prio = "⚪"
	}
	return fmt.Sprintf("%s **%s** (%s · %dmin · %s)", status, r.Title, prio, r.EstimatedTime, r.Category)
}

// Parameter values arrive from JSON, so numbers are float64 and some
// providers quote them. These helpers normalize both shapes, the way
// the prompt examples tolerate.

func paramString(params map[string]interface{}, key string) string {
	if v, ok := params[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func paramInt(params map[string]interface{}, key string, def int) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

func paramBool(params map[string]interface{}, key string) (value, present bool) {
	switch v := params[key].(type) {
	case bool:
		return v, true
	case string:
		if v == "true" {
			return true, true
		}
		if v == "false" {
			return false, true
		}
	}
	return false, false
}
