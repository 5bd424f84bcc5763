package verse

import (
	"fmt"
	"strconv"
	"strings"
)

// ReferenceQuery is a parsed passage reference. Chapter and Verse are zero
// when absent ("John" → book only, "John 3" → book+chapter).
type ReferenceQuery struct {
	Book    string
	Chapter int
	Verse   int
}

// ParseReference parses command-line reference tokens. Accepted forms:
// "John 3:16", "John 3 16", "1 John 4", "Genesis". The book part resolves
// through NormalizeBook.
func ParseReference(tokens []string) (ReferenceQuery, error) {
	if len(tokens) == 0 {
		return ReferenceQuery{}, fmt.Errorf("reference is required")
	}
	joined := strings.TrimSpace(strings.Join(tokens, " "))

	var (
		bookPart string
		chapter  int
		number   int
	)

	if strings.Contains(joined, ":") {
		parts := strings.Split(joined, ":")
		if len(parts) != 2 {
			return ReferenceQuery{}, fmt.Errorf("invalid reference: %s", joined)
		}
		right := strings.TrimSpace(parts[1])
		v, ok := parseNum(right)
		if !ok {
			return ReferenceQuery{}, fmt.Errorf("invalid verse: %s", right)
		}
		number = v

		left := strings.Fields(strings.TrimSpace(parts[0]))
		if len(left) < 2 {
			return ReferenceQuery{}, fmt.Errorf("chapter is required: %s", parts[0])
		}
		c, ok := parseNum(left[len(left)-1])
		if !ok {
			return ReferenceQuery{}, fmt.Errorf("invalid chapter: %s", left[len(left)-1])
		}
		chapter = c
		bookPart = strings.Join(left[:len(left)-1], " ")
	} else {
		bookPart, chapter, number = splitTrailingNumbers(joined)
	}

	book, ok := NormalizeBook(bookPart)
	if !ok {
		return ReferenceQuery{}, fmt.Errorf("unknown book: %s", bookPart)
	}
	return ReferenceQuery{Book: book, Chapter: chapter, Verse: number}, nil
}

// splitTrailingNumbers peels up to two trailing numbers off the reference:
// "John 3 16" → ("John", 3, 16), "John 3" → ("John", 3, 0). A leading number
// that is part of the book name ("1 John") survives because only trailing
// numeric tokens are consumed.
func splitTrailingNumbers(input string) (string, int, int) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return input, 0, 0
	}

	last, lastOK := parseNum(parts[len(parts)-1])
	if !lastOK {
		return input, 0, 0
	}

	if len(parts) >= 3 {
		if prev, ok := parseNum(parts[len(parts)-2]); ok {
			book := strings.Join(parts[:len(parts)-2], " ")
			if book != "" {
				return book, prev, last
			}
		}
	}
	if len(parts) >= 2 {
		return strings.Join(parts[:len(parts)-1], " "), last, 0
	}
	return input, 0, 0
}

func parseNum(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 0xFFFF {
		return 0, false
	}
	return n, true
}
