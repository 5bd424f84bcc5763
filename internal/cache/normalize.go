package cache

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/biblec/biblec/internal/verse"
)

// normalizeSource converts any of the known KJV source shapes into a flat
// verse list: a JSON array of verse objects, an object wrapping such an
// array ("books"/"verses"/"data"), a nested book/chapters structure, or
// JSONL with one verse per line.
func normalizeSource(raw string) ([]verse.Verse, error) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff"))
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		var value any
		if err := json.Unmarshal([]byte(trimmed), &value); err != nil {
			return nil, err
		}
		return parseJSONValue(value)
	}
	return parseJSONL(trimmed)
}

func parseJSONL(raw string) ([]verse.Verse, error) {
	var verses []verse.Verse
	for i, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var v verse.Verse
		if err := json.Unmarshal([]byte(line), &v); err != nil {
			return nil, fmt.Errorf("invalid JSONL on line %d: %w", i+1, err)
		}
		verses = append(verses, v)
	}
	if len(verses) == 0 {
		return nil, fmt.Errorf("no verses found in JSONL source")
	}
	return verses, nil
}

func parseJSONValue(value any) ([]verse.Verse, error) {
	switch v := value.(type) {
	case []any:
		return parseArray(v)
	case map[string]any:
		for _, key := range []string{"books", "verses", "data"} {
			if arr, ok := v[key].([]any); ok {
				if key == "books" {
					return parseBooks(arr)
				}
				return parseArray(arr)
			}
		}
		return nil, fmt.Errorf("unsupported JSON object structure for KJV source")
	default:
		return nil, fmt.Errorf("unsupported JSON structure for KJV source")
	}
}

func parseArray(arr []any) ([]verse.Verse, error) {
	var verses []verse.Verse
	for _, item := range arr {
		if v, ok := extractVerse(item); ok {
			verses = append(verses, v)
		}
	}
	if len(verses) > 0 {
		return verses, nil
	}

	// An array of {name, chapters: [[...]]} objects is the books shape.
	for _, item := range arr {
		if obj, ok := item.(map[string]any); ok {
			if _, hasChapters := obj["chapters"]; hasChapters {
				return parseBooks(arr)
			}
		}
	}
	return nil, fmt.Errorf("no verses found in array source")
}

func parseBooks(books []any) ([]verse.Verse, error) {
	var verses []verse.Verse
	for _, bookVal := range books {
		obj, ok := bookVal.(map[string]any)
		if !ok {
			continue
		}
		name := extractString(obj, "name", "book", "bookName", "book_name")
		if name == "" {
			name = "Unknown"
		}
		if canonical, ok := verse.NormalizeBook(name); ok {
			name = canonical
		}

		chapters, ok := obj["chapters"].([]any)
		if !ok {
			continue
		}
		for chapterIdx, chapterVal := range chapters {
			versesArr, ok := chapterVal.([]any)
			if !ok {
				continue
			}
			for verseIdx, verseVal := range versesArr {
				var text string
				switch vv := verseVal.(type) {
				case string:
					text = vv
				case map[string]any:
					text = extractString(vv, "text", "content", "verse")
				}
				if strings.TrimSpace(text) == "" {
					continue
				}
				verses = append(verses, verse.Verse{
					Book:    name,
					Chapter: chapterIdx + 1,
					Verse:   verseIdx + 1,
					Text:    text,
				})
			}
		}
	}
	if len(verses) == 0 {
		return nil, fmt.Errorf("no verses found in books structure")
	}
	return verses, nil
}

func extractVerse(value any) (verse.Verse, bool) {
	obj, ok := value.(map[string]any)
	if !ok {
		return verse.Verse{}, false
	}

	bookRaw := extractString(obj, "book", "book_name", "bookName", "bookname")
	if bookRaw == "" {
		return verse.Verse{}, false
	}
	book := bookRaw
	if canonical, ok := verse.NormalizeBook(bookRaw); ok {
		book = canonical
	}

	chapter, ok := extractInt(obj, "chapter", "chapter_id", "chapterId")
	if !ok {
		return verse.Verse{}, false
	}
	number, ok := extractInt(obj, "verse", "verse_id", "verseId", "verse_num")
	if !ok {
		return verse.Verse{}, false
	}

	text := extractString(obj, "text", "content", "verse_text", "text_verse")
	if text == "" {
		// Some sources use "verse" for the text rather than the number.
		if s, ok := obj["verse"].(string); ok {
			text = s
		}
	}
	if strings.TrimSpace(text) == "" {
		return verse.Verse{}, false
	}
	return verse.Verse{Book: book, Chapter: chapter, Verse: number, Text: text}, true
}

func extractString(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := obj[key].(string); ok {
			return s
		}
	}
	return ""
}

func extractInt(obj map[string]any, keys ...string) (int, bool) {
	for _, key := range keys {
		switch v := obj[key].(type) {
		case float64:
			if v >= 0 && v == float64(int(v)) {
				return int(v), true
			}
		case string:
			if n, err := strconv.Atoi(v); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}
