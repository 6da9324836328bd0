package intent

// MoodPhrases returns the reference phrases for the mood-query intent.
func MoodPhrases() []string {
	return []string{
		"what's my mood",
		"what is my mood",
		"how am i feeling",
		"how do i feel today",
		"can you tell how i feel",
		"analyze my mood",
		"what emotion am i showing",
		"tell me how i am feeling",
	}
}

// MoviePhrases returns the reference phrases for the movie-query intent.
func MoviePhrases() []string {
	return []string{
		"suggest a movie for me",
		"recommend a movie",
		"recommend me a film",
		"what should i watch",
		"give me a movie recommendation",
		"pick a film for me",
		"i want to watch something",
		"any movie suggestions",
	}
}
