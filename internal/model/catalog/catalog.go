package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// ErrEmptyCatalog is returned when the source yields no valid entries.
// It is surfaced at startup, never per request.
var ErrEmptyCatalog = errors.New("movie catalog is empty")

// Entry is one validated catalog row. Genres are lower-cased tokens and the
// mood tag is derived from them at load time.
type Entry struct {
	Title  string   `json:"title"`
	Genres []string `json:"genres"`
	Mood   string   `json:"mood"`
}

// Catalog holds the loaded movie set, read-only after construction.
type Catalog struct {
	entries []Entry
	byMood  map[string][]Entry
}

// genreMoods assigns each known genre token a coarse mood bucket.
var genreMoods = map[string]string{
	"comedy":      "happy",
	"animation":   "happy",
	"family":      "happy",
	"musical":     "happy",
	"drama":       "sad",
	"war":         "sad",
	"romance":     "romantic",
	"horror":      "scary",
	"thriller":    "scary",
	"mystery":     "scary",
	"action":      "excited",
	"adventure":   "excited",
	"sci-fi":      "excited",
	"fantasy":     "excited",
	"crime":       "angry",
	"western":     "angry",
	"documentary": "neutral",
}

// moodPriority breaks ties between equally voted buckets.
var moodPriority = []string{"happy", "sad", "excited", "scary", "romantic", "angry", "neutral"}

// LoadCSV reads a catalog from a CSV file of (title, genres) rows, where the
// genres column is a whitespace-separated list. A header row is detected and
// skipped. Rows without a title or with an empty genre set are dropped.
func LoadCSV(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog source: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Load parses catalog rows from a reader. See LoadCSV.
func Load(r io.Reader) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	entries := make([]Entry, 0, 128)
	rejected := 0
	first := true

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse catalog row: %w", err)
		}

		if first {
			first = false
			if looksLikeHeader(record) {
				continue
			}
		}

		entry, ok := parseRow(record)
		if !ok {
			rejected++
			continue
		}
		entries = append(entries, entry)
	}

	if rejected > 0 {
		log.Printf("[catalog] dropped %d rows with missing title or genres", rejected)
	}
	if len(entries) == 0 {
		return nil, ErrEmptyCatalog
	}

	byMood := make(map[string][]Entry)
	for _, entry := range entries {
		byMood[entry.Mood] = append(byMood[entry.Mood], entry)
	}

	return &Catalog{entries: entries, byMood: byMood}, nil
}

func looksLikeHeader(record []string) bool {
	return len(record) >= 1 && strings.EqualFold(strings.TrimSpace(record[0]), "title")
}

func parseRow(record []string) (Entry, bool) {
	if len(record) < 2 {
		return Entry{}, false
	}

	title := strings.TrimSpace(record[0])
	genres := strings.Fields(strings.ToLower(record[1]))
	if title == "" || len(genres) == 0 {
		return Entry{}, false
	}

	return Entry{Title: title, Genres: genres, Mood: deriveMood(genres)}, true
}

// deriveMood votes each genre into its bucket and picks the most supported
// one, using the fixed priority order on ties. Unknown genres do not vote;
// an entry with only unknown genres lands in neutral.
func deriveMood(genres []string) string {
	votes := make(map[string]int)
	for _, genre := range genres {
		if mood, ok := genreMoods[genre]; ok {
			votes[mood]++
		}
	}

	best := "neutral"
	bestVotes := 0
	for _, mood := range moodPriority {
		if votes[mood] > bestVotes {
			best = mood
			bestVotes = votes[mood]
		}
	}
	return best
}

// Len reports the number of loaded entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns a copy of the full catalog.
func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// ByMood returns a copy of the entries tagged with the given mood bucket.
// An unknown bucket yields an empty slice.
func (c *Catalog) ByMood(mood string) []Entry {
	return append([]Entry(nil), c.byMood[mood]...)
}

// Moods lists the buckets that have at least one entry.
func (c *Catalog) Moods() []string {
	moods := make([]string, 0, len(c.byMood))
	for _, mood := range moodPriority {
		if len(c.byMood[mood]) > 0 {
			moods = append(moods, mood)
		}
	}
	return moods
}
