// Package action implements the embedded command protocol: extraction
// of [ACTION:{...}] directives from generated text and their dispatch
// against the task store.
package action

import (
	"encoding/json"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Intent names recognized by the dispatcher. The set is open:
// directives with other intents parse fine and are ignored at
// dispatch.
const (
	IntentCreateTask   = "create_task"
	IntentCompleteTask = "complete_task"
	IntentListTasks    = "list_tasks"
	IntentUpdateTask   = "update_task"
)

// Directive is one structured command extracted from generated text.
type Directive struct {
	Intent     string                 `json:"intent"`
	Parameters map[string]interface{} `json:"parameters"`
}

// Wire format: [ACTION:{...}] with a single JSON object between the
// wrapper tokens, non-greedy so adjacent directives don't merge. The
// JSON must sit on one line, matching what the prompt instructs
// providers to emit.
var directivePattern = regexp.MustCompile(`\[ACTION:(\{.*?\})\]`)

// Codec extracts directives from raw provider output.
type Codec struct {
	logger *zap.Logger
}

// NewCodec returns a codec. A nil logger is replaced with a no-op.
func NewCodec(logger *zap.Logger) *Codec {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Codec{logger: logger.Named("codec")}
}

// Extract scans raw for directive wrappers, in left-to-right order.
// Every wrapper is removed from the returned clean text, whether or
// not its payload parses; malformed payloads are logged and dropped
// rather than surfaced, so raw protocol syntax never reaches the
// user. Extract is total: any input yields a (possibly empty) clean
// text and a (possibly empty) directive slice, never an error.
func (c *Codec) Extract(raw string) (string, []Directive) {
	var directives []Directive

	clean := directivePattern.ReplaceAllStringFunc(raw, func(match string) string {
		payload := match[len("[ACTION:") : len(match)-1]
		var d Directive
		if err := json.Unmarshal([]byte(payload), &d); err != nil {
			c.logger.Warn("dropping malformed action payload",
				zap.String("payload", payload),
				zap.Error(err))
			return ""
		}
		if d.Intent == "" {
			c.logger.Warn("dropping action payload without intent",
				zap.String("payload", payload))
			return ""
		}
		directives = append(directives, d)
		return ""
	})

	return strings.TrimSpace(clean), directives
}
