package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omerk/quizforge/internal/llm"
	"github.com/omerk/quizforge/internal/quiz"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

// testQuestion folds the id into the stem: the bank enforces stem
// uniqueness per document.
func testQuestion(id, topic string) quiz.Candidate {
	return quiz.Candidate{
		ID:          id,
		Text:        fmt.Sprintf("מהי תקופת ההתיישנות של עבירת משמעת לפי חוק המתווכים? (%s)", id),
		Options:     []string{"שנה", "שלוש שנים", "חמש שנים", "שבע שנים"},
		Correct:     1,
		Topic:       topic,
		Explanation: "סעיף 86 לחוק קובע שלוש שנים.",
		SourceRef:   "exam-2020-q12",
	}
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	require.NotNil(t, s.DB())
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is only meaningful with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		require.NoError(t, err, "PRAGMA %s", tt.pragma)
		assert.Equal(t, tt.want, got, "PRAGMA %s", tt.pragma)
	}
}

func TestQuestionInsertAndFetch(t *testing.T) {
	s := openTestStore(t)
	repo := s.Questions()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, "part1-2020", testQuestion("q1", "contracts")))
	require.NoError(t, repo.Insert(ctx, "part1-2020", testQuestion("q2", "licenses")))
	require.NoError(t, repo.Insert(ctx, "part2-2021", testQuestion("q3", "contracts")))

	got, err := repo.FetchRandom(ctx, "part1-2020", nil, 10)
	require.NoError(t, err)
	require.Len(t, got, 2, "doc scope")
	for _, c := range got {
		assert.Equal(t, quiz.OriginStore, c.Origin)
		assert.Len(t, c.Options, 4, "options round-trip for %s", c.ID)
	}

	got, err = repo.FetchRandom(ctx, "part1-2020", []string{"contracts"}, 10)
	require.NoError(t, err)
	require.Len(t, got, 1, "topic filter")
	assert.Equal(t, "q1", got[0].ID)

	n, err := repo.Count(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestFetchRandomRespectsLimit(t *testing.T) {
	s := openTestStore(t)
	repo := s.Questions()
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		q := testQuestion(fmt.Sprintf("lim-%d", i), "contracts")
		require.NoError(t, repo.Insert(ctx, "doc", q))
	}

	got, err := repo.FetchRandom(ctx, "doc", nil, 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = repo.FetchRandom(ctx, "doc", nil, 0)
	require.NoError(t, err)
	assert.Nil(t, got, "zero count should be a no-op")
}

func TestSaveGeneratedBanksForReuse(t *testing.T) {
	s := openTestStore(t)
	repo := s.Questions()
	ctx := context.Background()

	fromStore := testQuestion("s1", "contracts")
	fromStore.Origin = quiz.OriginStore

	gen1 := testQuestion("g1", "contracts")
	gen1.Origin = quiz.OriginGenerated
	gen2 := testQuestion("g2", "licenses")
	gen2.Text = "מי רשאי לבטל רישיון תיווך לפי החוק?"
	gen2.Origin = quiz.OriginGenerated

	saved, err := repo.SaveGenerated(ctx, "part1-2020", []quiz.Candidate{fromStore, gen1, gen2})
	require.NoError(t, err)
	assert.Equal(t, 2, saved, "only generated candidates are banked")

	n, err := repo.Count(ctx, "part1-2020")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Re-banking the same session adds nothing: same stems, same doc.
	saved, err = repo.SaveGenerated(ctx, "part1-2020", []quiz.Candidate{gen1, gen2})
	require.NoError(t, err)
	assert.Zero(t, saved, "duplicate stems must be ignored")

	// Banked questions come back through the normal fetch path.
	got, err := repo.FetchRandom(ctx, "part1-2020", nil, 10)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestHistoryReplaceLoadClear(t *testing.T) {
	s := openTestStore(t)
	repo := s.History()
	ctx := context.Background()

	snapshot := []string{"newest fingerprint", "middle fingerprint", "oldest fingerprint"}
	require.NoError(t, repo.Replace(ctx, snapshot))

	got, err := repo.Load(ctx, 50)
	require.NoError(t, err)
	assert.Equal(t, snapshot, got, "recency order must survive the round trip")

	got, err = repo.Load(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, snapshot[:2], got, "limit keeps the most recent entries")

	// Replace swaps wholesale, it does not accumulate.
	require.NoError(t, repo.Replace(ctx, []string{"only one"}))
	got, err = repo.Load(ctx, 50)
	require.NoError(t, err)
	assert.Equal(t, []string{"only one"}, got)

	require.NoError(t, repo.Clear(ctx))
	got, err = repo.Load(ctx, 50)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStatsUpsertAndLoad(t *testing.T) {
	s := openTestStore(t)
	repo := s.Stats()
	ctx := context.Background()

	answers := []struct {
		topic   string
		correct bool
	}{
		{"contracts", true},
		{"contracts", false},
		{"contracts", false},
		{"licenses", true},
	}
	for _, a := range answers {
		require.NoError(t, repo.RecordAnswer(ctx, a.topic, a.correct))
	}

	stats, err := repo.Load(ctx)
	require.NoError(t, err)

	c := stats["contracts"]
	assert.Equal(t, 3, c.TotalAnswered)
	assert.Equal(t, 1, c.CorrectCount)
	assert.Equal(t, 2, c.IncorrectCount)

	l := stats["licenses"]
	assert.Equal(t, 1, l.TotalAnswered)
	assert.Equal(t, 1, l.CorrectCount)

	require.NoError(t, repo.Reset(ctx))
	stats, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestCallLogRecordAndTotals(t *testing.T) {
	s := openTestStore(t)
	log := s.CallLog()
	ctx := context.Background()

	records := []llm.CallRecord{
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "mcq-batch", InputTokens: 900, OutputTokens: 450, LatencyMs: 1200, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "mcq-batch", InputTokens: 100, OutputTokens: 0, Success: false, ErrorMessage: "rate limited"},
	}
	for _, r := range records {
		require.NoError(t, log.RecordCall(ctx, r))
	}

	calls, in, out, err := log.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1000, in)
	assert.Equal(t, 450, out)
}
