package verse

// Mood is a curated list of verse references for a feeling or need.
type Mood struct {
	Name        string
	Description string
	Refs        []Ref
}

// AllMoods returns the curated mood catalog.
func AllMoods() []Mood { return moods }

// FindMood looks up a mood by name, ignoring case and punctuation.
func FindMood(name string) (Mood, bool) {
	key := normalizeKey(name)
	for _, mood := range moods {
		if normalizeKey(mood.Name) == key {
			return mood, true
		}
	}
	return Mood{}, false
}

var moods = []Mood{
	{
		Name:        "peace",
		Description: "Rest and calm in the storm",
		Refs: []Ref{
			{"John", 14, 27},
			{"Philippians", 4, 6},
			{"Psalms", 23, 1},
			{"Isaiah", 26, 3},
			{"Matthew", 11, 28},
		},
	},
	{
		Name:        "courage",
		Description: "Strength for hard steps",
		Refs: []Ref{
			{"Joshua", 1, 9},
			{"Isaiah", 41, 10},
			{"Psalms", 27, 1},
			{"2 Timothy", 1, 7},
			{"Deuteronomy", 31, 6},
		},
	},
	{
		Name:        "wisdom",
		Description: "Guidance and clarity",
		Refs: []Ref{
			{"Proverbs", 3, 5},
			{"James", 1, 5},
			{"Proverbs", 9, 10},
			{"Ecclesiastes", 7, 12},
			{"Psalms", 111, 10},
		},
	},
	{
		Name:        "hope",
		Description: "Light ahead",
		Refs: []Ref{
			{"Romans", 15, 13},
			{"Jeremiah", 29, 11},
			{"Psalms", 42, 11},
			{"Hebrews", 11, 1},
			{"Lamentations", 3, 22},
		},
	},
	{
		Name:        "gratitude",
		Description: "Thanks and remembrance",
		Refs: []Ref{
			{"1 Thessalonians", 5, 18},
			{"Psalms", 100, 4},
			{"Colossians", 3, 15},
			{"Psalms", 107, 1},
			{"Philippians", 4, 4},
		},
	},
}
