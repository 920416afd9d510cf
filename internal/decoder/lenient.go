package decoder

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"mcq-generator/internal/domain"
)

const (
	fence     = "```"
	jsonLabel = "json"
)

// decodeLenient is best effort: it reads question, options and explanation
// from whatever JSON it can find and leaves invariant checks to the caller.
func decodeLenient(raw string) (domain.QuestionSet, error) {
	body := strings.TrimSpace(extractJSONBody(stripThinking(raw)))
	if body == "" {
		return nil, errors.New("no JSON content found in response")
	}

	var data interface{}
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return nil, fmt.Errorf("extracted content is not valid JSON: %w", err)
	}

	var entries []interface{}
	switch v := data.(type) {
	case map[string]interface{}:
		field, ok := v[CollectionField]
		if !ok {
			return nil, fmt.Errorf("top-level %q array not found", CollectionField)
		}
		entries, ok = field.([]interface{})
		if !ok {
			return nil, fmt.Errorf("top-level %q field is not an array", CollectionField)
		}
	case []interface{}:
		entries = v
	default:
		return nil, fmt.Errorf("expected a JSON object with a %q array", CollectionField)
	}

	set := make(domain.QuestionSet, 0, len(entries))
	for i, entry := range entries {
		obj, ok := entry.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("entry %d is not an object", i)
		}
		question, ok := obj["question"].(string)
		if !ok {
			return nil, fmt.Errorf("entry %d: missing %q", i, "question")
		}
		rawOptions, ok := obj["options"]
		if !ok {
			return nil, fmt.Errorf("entry %d: missing %q", i, "options")
		}
		explanation, _ := obj["explanation"].(string)

		set = append(set, domain.Question{
			Question:    question,
			Options:     lenientOptions(rawOptions),
			Explanation: explanation,
		})
	}
	return set, nil
}

// lenientOptions keeps options as the model sent them. Entries that are not
// objects or strings become empty options so that validation drops the
// question instead of this tier guessing.
func lenientOptions(raw interface{}) []domain.Option {
	items, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	options := make([]domain.Option, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case map[string]interface{}:
			text, _ := v["text"].(string)
			options = append(options, domain.Option{Text: text, IsCorrect: truthy(v["is_correct"])})
		case string:
			options = append(options, domain.Option{Text: v})
		default:
			options = append(options, domain.Option{})
		}
	}
	return options
}

func truthy(v interface{}) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return err == nil && parsed
	default:
		return false
	}
}

// stripThinking removes a <think>...</think> block that some local models
// emit ahead of the answer.
func stripThinking(s string) string {
	start := strings.Index(s, "<think>")
	if start == -1 {
		return s
	}
	end := strings.Index(s, "</think>")
	if end == -1 || end < start {
		return s
	}
	return s[:start] + s[end+len("</think>"):]
}

// extractJSONBody returns the content of the first fenced block labeled
// json, else of the first bare fenced block, else the whole text. Only the
// first opening fence and the next closing fence are used so that a second
// block is never swallowed. An unclosed fence runs to the end of the text.
func extractJSONBody(text string) string {
	if start := indexLabeledFence(text); start >= 0 {
		return untilFence(text[start+len(fence)+len(jsonLabel):])
	}
	if start := strings.Index(text, fence); start >= 0 {
		return untilFence(dropLanguageTag(text[start+len(fence):]))
	}
	return text
}

func indexLabeledFence(text string) int {
	offset := 0
	for {
		i := strings.Index(text[offset:], fence)
		if i < 0 {
			return -1
		}
		start := offset + i
		label := text[start+len(fence):]
		if len(label) >= len(jsonLabel) && strings.EqualFold(label[:len(jsonLabel)], jsonLabel) {
			return start
		}
		offset = start + len(fence)
	}
}

func untilFence(s string) string {
	if end := strings.Index(s, fence); end >= 0 {
		return s[:end]
	}
	return s
}

// dropLanguageTag removes a language hint such as "javascript" from the
// opening line of a bare fence.
func dropLanguageTag(s string) string {
	nl := strings.IndexByte(s, '\n')
	if nl < 0 {
		return s
	}
	tag := strings.TrimSpace(s[:nl])
	if tag != "" && !strings.ContainsAny(tag, "{[\"") {
		return s[nl+1:]
	}
	return s
}
