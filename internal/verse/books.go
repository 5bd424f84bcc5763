package verse

import "strings"

// bookDef pairs a canonical book name with its accepted abbreviations.
type bookDef struct {
	name    string
	aliases []string
}

// NormalizeBook resolves a user-supplied book name or abbreviation to its
// canonical form. Matching ignores case and punctuation. Returns false for
// unknown books.
func NormalizeBook(input string) (string, bool) {
	key := normalizeKey(input)
	if key == "" {
		return "", false
	}
	for _, book := range books {
		if normalizeKey(book.name) == key {
			return book.name, true
		}
		for _, alias := range book.aliases {
			if normalizeKey(alias) == key {
				return book.name, true
			}
		}
	}
	return "", false
}

func normalizeKey(input string) string {
	var b strings.Builder
	for _, ch := range input {
		switch {
		case ch >= 'A' && ch <= 'Z':
			b.WriteRune(ch + ('a' - 'A'))
		case ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9':
			b.WriteRune(ch)
		case ch == ' ' || ch == '\t':
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

var books = []bookDef{
	{"Genesis", []string{"gen", "ge", "gn"}},
	{"Exodus", []string{"ex", "exo", "exod"}},
	{"Leviticus", []string{"lev", "le", "lv"}},
	{"Numbers", []string{"num", "nu", "nm", "nb"}},
	{"Deuteronomy", []string{"deut", "deu", "dt"}},
	{"Joshua", []string{"josh", "jos", "js"}},
	{"Judges", []string{"judg", "jdg", "jg"}},
	{"Ruth", []string{"ruth", "ru"}},
	{"1 Samuel", []string{"1 sam", "1sa", "i samuel", "i sam", "first samuel"}},
	{"2 Samuel", []string{"2 sam", "2sa", "ii samuel", "ii sam", "second samuel"}},
	{"1 Kings", []string{"1 kgs", "1ki", "i kings", "first kings"}},
	{"2 Kings", []string{"2 kgs", "2ki", "ii kings", "second kings"}},
	{"1 Chronicles", []string{"1 chron", "1 chr", "1ch", "i chronicles", "first chronicles"}},
	{"2 Chronicles", []string{"2 chron", "2 chr", "2ch", "ii chronicles", "second chronicles"}},
	{"Ezra", []string{"ezr"}},
	{"Nehemiah", []string{"neh", "ne"}},
	{"Esther", []string{"est", "es"}},
	{"Job", []string{"jb"}},
	{"Psalms", []string{"psalm", "ps", "psa", "pss"}},
	{"Proverbs", []string{"prov", "pr", "prv"}},
	{"Ecclesiastes", []string{"eccl", "ecc", "qoheleth"}},
	{"Song of Solomon", []string{"song of songs", "song", "sos", "canticles"}},
	{"Isaiah", []string{"isa", "is"}},
	{"Jeremiah", []string{"jer", "je", "jr"}},
	{"Lamentations", []string{"lam", "la"}},
	{"Ezekiel", []string{"ezek", "eze", "ezk"}},
	{"Daniel", []string{"dan", "da", "dn"}},
	{"Hosea", []string{"hos", "ho"}},
	{"Joel", []string{"jl"}},
	{"Amos", []string{"am"}},
	{"Obadiah", []string{"obad", "ob"}},
	{"Jonah", []string{"jon", "jnh"}},
	{"Micah", []string{"mic", "mc"}},
	{"Nahum", []string{"nah", "na"}},
	{"Habakkuk", []string{"hab", "hb"}},
	{"Zephaniah", []string{"zeph", "zep", "zp"}},
	{"Haggai", []string{"hag", "hg"}},
	{"Zechariah", []string{"zech", "zec", "zc"}},
	{"Malachi", []string{"mal", "ml"}},
	{"Matthew", []string{"matt", "mat", "mt"}},
	{"Mark", []string{"mrk", "mk"}},
	{"Luke", []string{"luk", "lk"}},
	{"John", []string{"joh", "jn"}},
	{"Acts", []string{"act", "ac"}},
	{"Romans", []string{"rom", "ro", "rm"}},
	{"1 Corinthians", []string{"1 cor", "1co", "i corinthians", "first corinthians"}},
	{"2 Corinthians", []string{"2 cor", "2co", "ii corinthians", "second corinthians"}},
	{"Galatians", []string{"gal", "ga"}},
	{"Ephesians", []string{"eph", "ep"}},
	{"Philippians", []string{"phil", "php", "phl"}},
	{"Colossians", []string{"col", "co"}},
	{"1 Thessalonians", []string{"1 thess", "1th", "i thessalonians", "first thessalonians"}},
	{"2 Thessalonians", []string{"2 thess", "2th", "ii thessalonians", "second thessalonians"}},
	{"1 Timothy", []string{"1 tim", "1ti", "i timothy", "first timothy"}},
	{"2 Timothy", []string{"2 tim", "2ti", "ii timothy", "second timothy"}},
	{"Titus", []string{"tit", "ti"}},
	{"Philemon", []string{"phm", "phile", "pm"}},
	{"Hebrews", []string{"heb", "he"}},
	{"James", []string{"jas", "jm"}},
	{"1 Peter", []string{"1 pet", "1pe", "i peter", "first peter"}},
	{"2 Peter", []string{"2 pet", "2pe", "ii peter", "second peter"}},
	{"1 John", []string{"1 jn", "1jo", "i john", "first john"}},
	{"2 John", []string{"2 jn", "2jo", "ii john", "second john"}},
	{"3 John", []string{"3 jn", "3jo", "iii john", "third john"}},
	{"Jude", []string{"jud"}},
	{"Revelation", []string{"rev", "re"}},
}
