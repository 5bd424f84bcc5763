// Package verse holds the KJV verse model, the local cache loader, and
// passage lookup: reference parsing, book name normalization, searching,
// and curated mood lists.
package verse

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Verse is one verse of the cached translation.
type Verse struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
	Text    string `json:"text"`
}

// Ref locates a verse without carrying its text.
type Ref struct {
	Book    string
	Chapter int
	Verse   int
}

// Reference renders the verse's canonical "Book chapter:verse" reference.
func (v Verse) Reference() string {
	return fmt.Sprintf("%s %d:%d", v.Book, v.Chapter, v.Verse)
}

// Load reads the JSONL verse cache at path. It fails when the file is
// missing or yields no verses.
func Load(path string) ([]Verse, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("KJV not found at %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var verses []Verse
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var v Verse
		if err := json.Unmarshal([]byte(line), &v); err != nil {
			return nil, fmt.Errorf("invalid JSON on line %d: %w", lineNo, err)
		}
		verses = append(verses, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(verses) == 0 {
		return nil, fmt.Errorf("KJV cache is empty at %s", path)
	}
	return verses, nil
}

// Find returns the verse matching the exact reference, or false.
func Find(verses []Verse, book string, chapter, number int) (Verse, bool) {
	for _, v := range verses {
		if v.Book == book && v.Chapter == chapter && v.Verse == number {
			return v, true
		}
	}
	return Verse{}, false
}

// MaxChapter returns the highest chapter number present for book, or false
// when the book is absent.
func MaxChapter(verses []Verse, book string) (int, bool) {
	maxSeen := 0
	for _, v := range verses {
		if v.Book == book && v.Chapter > maxSeen {
			maxSeen = v.Chapter
		}
	}
	return maxSeen, maxSeen > 0
}

// Chapter returns the verses of one chapter in verse order.
func Chapter(verses []Verse, book string, chapter int) []Verse {
	var out []Verse
	for _, v := range verses {
		if v.Book == book && v.Chapter == chapter {
			out = append(out, v)
		}
	}
	sortByVerse(out)
	return out
}

// Search returns up to limit verses whose text contains query,
// case-insensitively, optionally restricted to one (normalized) book.
func Search(verses []Verse, query, book string, limit int) []Verse {
	needle := strings.ToLower(query)
	var matches []Verse
	for _, v := range verses {
		if book != "" && v.Book != book {
			continue
		}
		if strings.Contains(strings.ToLower(v.Text), needle) {
			matches = append(matches, v)
		}
		if limit > 0 && len(matches) >= limit {
			break
		}
	}
	return matches
}

// Window returns the chapter slice around the verse at the given number,
// extended window verses in each direction, plus the index of the anchor
// verse within the slice.
func Window(chapterVerses []Verse, number, window int) ([]Verse, int, error) {
	position := -1
	for i, v := range chapterVerses {
		if v.Verse == number {
			position = i
			break
		}
	}
	if position < 0 {
		return nil, 0, fmt.Errorf("verse not found")
	}

	start := position - window
	if start < 0 {
		start = 0
	}
	end := position + window
	if end > len(chapterVerses)-1 {
		end = len(chapterVerses) - 1
	}
	return chapterVerses[start : end+1], position - start, nil
}

// PassageText concatenates verses into the plain-text passage used to seed
// AI conversations, one "Book c:v text" line each.
func PassageText(verses []Verse) string {
	var b strings.Builder
	for _, v := range verses {
		fmt.Fprintf(&b, "%s %d:%d %s\n", v.Book, v.Chapter, v.Verse, v.Text)
	}
	return b.String()
}

func sortByVerse(verses []Verse) {
	sort.Slice(verses, func(i, j int) bool { return verses[i].Verse < verses[j].Verse })
}
