package emotion

// Fine-grained emotion labels recognized by the analyzer.
const (
	Joy      = "joy"
	Sadness  = "sadness"
	Anger    = "anger"
	Fear     = "fear"
	Surprise = "surprise"
	Love     = "love"
	Neutral  = "neutral"
)

// Labels returns the fixed, ordered emotion label set. The order determines
// the row order of the pre-computed label embedding matrix.
func Labels() []string {
	return []string{Joy, Sadness, Anger, Fear, Surprise, Love, Neutral}
}
