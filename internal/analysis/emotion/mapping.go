package emotion

// Mapping is a pure label-to-category lookup with a fixed fallback for
// unknown labels. The chat-mood table and the recommendation-genre table are
// kept separate because their target vocabularies differ.
type Mapping struct {
	table    map[string]string
	fallback string
}

// NewMapping builds a Mapping from a table copy and a fallback category.
func NewMapping(table map[string]string, fallback string) Mapping {
	copied := make(map[string]string, len(table))
	for k, v := range table {
		copied[k] = v
	}
	return Mapping{table: copied, fallback: fallback}
}

// Map resolves a label to its category, or the fallback when absent.
func (m Mapping) Map(label string) string {
	if category, ok := m.table[label]; ok {
		return category
	}
	return m.fallback
}

// ChatMoods maps fine-grained emotion labels to the conversational mood
// words used in mood-disclosure replies.
func ChatMoods() Mapping {
	return NewMapping(map[string]string{
		Joy:      "happy",
		Sadness:  "sad",
		Anger:    "angry",
		Fear:     "anxious",
		Surprise: "surprised",
		Love:     "loved",
		Neutral:  "neutral",
	}, "neutral")
}

// GenreMoods maps fine-grained emotion labels to the coarse catalog buckets
// used for recommendation filtering.
func GenreMoods() Mapping {
	return NewMapping(map[string]string{
		Joy:      "happy",
		Sadness:  "sad",
		Anger:    "angry",
		Fear:     "scary",
		Surprise: "excited",
		Love:     "romantic",
		Neutral:  "neutral",
	}, "neutral")
}
