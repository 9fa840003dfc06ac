package internal

import (
	"bytes"
	"fmt"
	"mime"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxErrorMessage = 200

// errorMessage boils an error response body down to one line. JSON bodies yield
// their error/detail/message field or DRF field errors; HTML pages yield their title.
func errorMessage(contentType string, body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}

	mediaType, _, _ := mime.ParseMediaType(contentType)
	if mediaType == "text/html" || bytes.HasPrefix(trimmed, []byte("<")) {
		if title := htmlTitle(trimmed); title != "" {
			return title
		}
	}

	if trimmed[0] == '{' {
		var payload map[string]any
		if err := json.Unmarshal(trimmed, &payload); err == nil {
			if msg := jsonMessage(payload); msg != "" {
				return truncate(msg)
			}
		}
	}

	return truncate(string(trimmed))
}

func jsonMessage(payload map[string]any) string {
	for _, key := range []string{"error", "detail", "message"} {
		if value, ok := payload[key].(string); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}

	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		switch value := payload[key].(type) {
		case []any:
			msgs := make([]string, 0, len(value))
			for _, v := range value {
				msgs = append(msgs, fmt.Sprint(v))
			}
			parts = append(parts, key+": "+strings.Join(msgs, " "))
		case string:
			parts = append(parts, key+": "+value)
		}
	}
	return strings.Join(parts, "; ")
}

func htmlTitle(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	return strings.Join(strings.Fields(title), " ")
}

func truncate(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= maxErrorMessage {
		return s
	}
	return s[:maxErrorMessage] + "..."
}
