// Package topicstats holds per-topic answer statistics and the sampler
// that biases question requests toward a user's weak topics.
package topicstats

// TopicStat is the answer history for a single topic. Owned by the
// caller; the sampler treats it as read-only input.
type TopicStat struct {
	Topic          string
	TotalAnswered  int
	CorrectCount   int
	IncorrectCount int
}

// Accuracy returns the fraction of answers that were correct, or 0 when
// nothing has been answered yet.
func (s TopicStat) Accuracy() float64 {
	if s.TotalAnswered == 0 {
		return 0
	}
	return float64(s.CorrectCount) / float64(s.TotalAnswered)
}
