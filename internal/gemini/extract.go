package gemini

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/tidwall/gjson"
)

// NoAnswerText is returned when a recognised response shape carries no text.
const NoAnswerText = "⚠️ No answer returned"

var errUnexpectedShape = errors.New("unexpected response shape")

// Reply is the text pulled out of a generation response. Fallback is set when
// Text is the placeholder or the string form of the whole response rather
// than answer text.
type Reply struct {
	Text     string
	Fallback bool
}

// extractor looks for reply text in one response shape. ok is false when the
// shape does not apply; an error means the shape applied but was malformed.
type extractor func(doc gjson.Result) (reply Reply, ok bool, err error)

// extractors run in order; the first one that applies wins.
var extractors = []extractor{
	fromCandidates,
	fromOutput,
	fromResult,
}

// ExtractReply pulls the reply text out of a generation response. Unknown or
// malformed shapes yield the string form of the whole document.
func ExtractReply(doc gjson.Result) Reply {
	whole := Reply{Text: stringForm(doc), Fallback: true}
	if !doc.IsObject() {
		return whole
	}

	for _, extract := range extractors {
		reply, ok, err := extract(doc)
		if err != nil {
			return whole
		}
		if ok {
			return reply
		}
	}

	return whole
}

// fromCandidates reads candidates[0].content.parts[0].text.
func fromCandidates(doc gjson.Result) (Reply, bool, error) {
	candidates := doc.Get("candidates")
	if !candidates.IsArray() || len(candidates.Array()) == 0 {
		return Reply{}, false, nil
	}

	first := candidates.Array()[0]
	if !first.IsObject() {
		return Reply{}, true, errUnexpectedShape
	}

	content := first.Get("content")
	if content.Exists() && !content.IsObject() {
		return Reply{}, true, errUnexpectedShape
	}

	parts := content.Get("parts")
	if !parts.IsArray() || len(parts.Array()) == 0 {
		return Reply{}, true, errUnexpectedShape
	}

	part := parts.Array()[0]
	if !part.IsObject() {
		return Reply{}, true, errUnexpectedShape
	}

	return textOrPlaceholder(part), true, nil
}

// fromOutput reads output.text.
func fromOutput(doc gjson.Result) (Reply, bool, error) {
	output := doc.Get("output")
	if !output.Exists() {
		return Reply{}, false, nil
	}
	if !output.IsObject() {
		return Reply{}, true, errUnexpectedShape
	}
	return textOrPlaceholder(output), true, nil
}

// fromResult stringifies whatever sits under result.
func fromResult(doc gjson.Result) (Reply, bool, error) {
	result := doc.Get("result")
	if !result.Exists() {
		return Reply{}, false, nil
	}
	return Reply{Text: stringForm(result)}, true, nil
}

func textOrPlaceholder(obj gjson.Result) Reply {
	text := obj.Get("text")
	if !text.Exists() {
		return Reply{Text: NoAnswerText, Fallback: true}
	}
	return Reply{Text: stringForm(text)}
}

// stringForm renders strings unquoted and every other value as compact JSON.
func stringForm(v gjson.Result) string {
	if v.Type == gjson.String {
		return v.Str
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(v.Raw)); err != nil {
		return v.Raw
	}
	return buf.String()
}
