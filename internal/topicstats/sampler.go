package topicstats

import (
	"math"
	"sort"
)

// Data-sufficiency thresholds: below these the sampler cannot tell weak
// topics from strong ones and requests stay undifferentiated.
const (
	minTotalAnswered = 10
	minDistinctTopics = 3
)

// weakShare is the fraction of a request routed to weak topics when the
// stats are data-sufficient.
const weakShare = 0.7

// Plan is the result of partitioning a requested question count.
//
// When Differentiated is false the caller should issue a single general
// (non-topic-targeted) request for the full count. When true, Weak+Strong
// equals the requested count and the topic lists order each group weakest
// first / strongest first respectively. A group's topic list may be empty
// even with a nonzero count; the scheduler falls back to a general
// request for that sub-count to guarantee progress.
type Plan struct {
	Differentiated bool

	Weak   int
	Strong int

	WeakTopics   []string
	StrongTopics []string
}

// Split partitions a requested question count into weak-topic and
// strong-topic sub-counts based on the user's accuracy history.
//
// Stats are data-sufficient when at least 10 answers span at least 3
// distinct topics. Weak topics are those with accuracy strictly below the
// median accuracy across all topics.
func Split(stats map[string]TopicStat, n int) Plan {
	if n <= 0 {
		return Plan{}
	}

	total := 0
	for _, s := range stats {
		total += s.TotalAnswered
	}
	if total < minTotalAnswered || len(stats) < minDistinctTopics {
		return Plan{}
	}

	ranked := make([]topicAcc, 0, len(stats))
	for topic, s := range stats {
		ranked = append(ranked, topicAcc{topic: topic, acc: s.Accuracy()})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].acc != ranked[j].acc {
			return ranked[i].acc < ranked[j].acc
		}
		return ranked[i].topic < ranked[j].topic
	})

	med := medianAccuracy(ranked)

	plan := Plan{Differentiated: true}
	plan.Weak = int(math.Round(float64(n) * weakShare))
	plan.Strong = n - plan.Weak

	// ranked is ascending, so weak topics come out weakest-first.
	for _, r := range ranked {
		if r.acc < med {
			plan.WeakTopics = append(plan.WeakTopics, r.topic)
		}
	}
	// Strong topics strongest-first.
	for i := len(ranked) - 1; i >= 0; i-- {
		if ranked[i].acc >= med {
			plan.StrongTopics = append(plan.StrongTopics, ranked[i].topic)
		}
	}

	return plan
}

type topicAcc struct {
	topic string
	acc   float64
}

// medianAccuracy expects ranked sorted ascending by accuracy.
func medianAccuracy(ranked []topicAcc) float64 {
	mid := len(ranked) / 2
	if len(ranked)%2 == 1 {
		return ranked[mid].acc
	}
	return (ranked[mid-1].acc + ranked[mid].acc) / 2
}
