package topicstats

import "sync"

// Tracker maintains a live TopicStat map shared between concurrent
// sessions. Reads return copies; updates are serialized per map.
type Tracker struct {
	mu    sync.RWMutex
	stats map[string]TopicStat
}

// NewTracker creates a Tracker seeded with the given stats (may be nil).
func NewTracker(seed map[string]TopicStat) *Tracker {
	stats := make(map[string]TopicStat, len(seed))
	for topic, s := range seed {
		stats[topic] = s
	}
	return &Tracker{stats: stats}
}

// RecordAnswer updates the stat for topic with one answered question.
func (t *Tracker) RecordAnswer(topic string, correct bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.stats[topic]
	s.Topic = topic
	s.TotalAnswered++
	if correct {
		s.CorrectCount++
	} else {
		s.IncorrectCount++
	}
	t.stats[topic] = s
}

// Stats returns a copy of the current per-topic statistics.
func (t *Tracker) Stats() map[string]TopicStat {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[string]TopicStat, len(t.stats))
	for topic, s := range t.stats {
		out[topic] = s
	}
	return out
}
