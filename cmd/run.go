package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/omerk/quizforge/internal/history"
	"github.com/omerk/quizforge/internal/llm"
	"github.com/omerk/quizforge/internal/mcqgen"
	"github.com/omerk/quizforge/internal/quiz"
	"github.com/omerk/quizforge/internal/quizgen"
	"github.com/omerk/quizforge/internal/store"
	"github.com/omerk/quizforge/internal/topicstats"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate and take a quiz",
	RunE:  runQuiz,
}

func init() {
	runCmd.Flags().IntP("count", "n", 10, "Number of unique questions to produce")
	runCmd.Flags().String("doc", "", "Document ID scoping stored questions")
	runCmd.Flags().String("material", "", "Path to a text file with the source material for generation")
	runCmd.Flags().String("mix", "auto", "Question sources: auto, store, generate")
	runCmd.Flags().String("provider", "", "LLM provider override: openai, anthropic, gemini")
	runCmd.Flags().Bool("print-only", false, "Print the questions without the interactive answer loop")
}

// storeSource adapts the question repository to the scheduler's source
// interface.
type storeSource struct {
	repo *store.QuestionRepo
}

func (s *storeSource) FetchQuestions(ctx context.Context, docID string, topics []string, count int) ([]quiz.Candidate, error) {
	return s.repo.FetchRandom(ctx, docID, topics, count)
}

// mcqSource adapts the MCQ generator to the scheduler's generator
// interface.
type mcqSource struct {
	gen *mcqgen.Generator
}

func (s *mcqSource) Generate(ctx context.Context, req quizgen.GenerateRequest) ([]quiz.Candidate, error) {
	return s.gen.Generate(ctx, mcqgen.BatchInput{
		Topics:         req.Topics,
		DocContext:     req.DocContext,
		Count:          req.Count,
		PriorQuestions: req.Prior,
	})
}

func parseMix(s string) (quizgen.SourceMix, error) {
	switch s {
	case "auto", "":
		return quizgen.MixAuto, nil
	case "store":
		return quizgen.MixStoreOnly, nil
	case "generate":
		return quizgen.MixGeneratorOnly, nil
	default:
		return quizgen.MixAuto, fmt.Errorf("unknown source mix: %q", s)
	}
}

func runQuiz(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	count, _ := cmd.Flags().GetInt("count")
	docID, _ := cmd.Flags().GetString("doc")
	materialPath, _ := cmd.Flags().GetString("material")
	mixFlag, _ := cmd.Flags().GetString("mix")
	providerFlag, _ := cmd.Flags().GetString("provider")
	printOnly, _ := cmd.Flags().GetBool("print-only")

	mix, err := parseMix(mixFlag)
	if err != nil {
		return err
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	var docContext string
	if materialPath != "" {
		data, err := os.ReadFile(materialPath)
		if err != nil {
			return fmt.Errorf("read material: %w", err)
		}
		docContext = string(data)
	}

	var gen quizgen.Generator
	if mix != quizgen.MixStoreOnly {
		llmCfg := llm.ConfigFromEnv()
		if providerFlag != "" {
			llmCfg.Provider = providerFlag
		}
		client, err := llm.NewClient(ctx, llmCfg, st.CallLog())
		if err != nil {
			if mix == quizgen.MixGeneratorOnly {
				return fmt.Errorf("LLM backend not configured: %w", err)
			}
			fmt.Fprintln(os.Stderr, "LLM backend not configured:", err)
			fmt.Fprintln(os.Stderr, "Falling back to stored questions only.")
			mix = quizgen.MixStoreOnly
		} else {
			gen = &mcqSource{gen: mcqgen.New(client, mcqgen.DefaultConfig())}
		}
	}

	stats, err := st.Stats().Load(ctx)
	if err != nil {
		return fmt.Errorf("load topic stats: %w", err)
	}

	// The window survives across invocations through the store, so a
	// question delivered yesterday stays suppressed today.
	window := history.NewWindow()
	fps, err := st.History().Load(ctx, history.DefaultCapacity)
	if err != nil {
		return fmt.Errorf("load question history: %w", err)
	}
	window.Restore(fps)

	svc := quizgen.NewService(
		&storeSource{repo: st.Questions()},
		gen,
		window,
		quizgen.DefaultConfig(),
	)

	h, err := svc.StartSession(ctx, quizgen.Request{
		Target:     count,
		Stats:      stats,
		Mix:        mix,
		DocID:      docID,
		DocContext: docContext,
	})
	if err != nil {
		return err
	}

	if printOnly {
		err = printSession(cmd.OutOrStdout(), h)
	} else {
		err = quizSession(ctx, cmd, st, h)
	}

	persistSession(ctx, st, h, window, docID)
	return err
}

// persistSession banks the session's generated questions for reuse and
// writes the refreshed history window back to the store. Persistence
// failures degrade to warnings; the quiz already happened.
func persistSession(ctx context.Context, st *store.Store, h *quizgen.Handle, window *history.Window, docID string) {
	if result, err := h.Result(); err == nil {
		if _, err := st.Questions().SaveGenerated(ctx, docID, result); err != nil {
			fmt.Fprintln(os.Stderr, "bank generated questions:", err)
		}
	}
	if err := st.History().Replace(ctx, window.Snapshot()); err != nil {
		fmt.Fprintln(os.Stderr, "save question history:", err)
	}
}

// printSession streams the session to stdout without answering.
func printSession(w io.Writer, h *quizgen.Handle) error {
	printed := 0
	for ev := range h.Progress() {
		for ; printed < len(ev.Visible); printed++ {
			printQuestion(w, printed+1, ev.Visible[printed])
		}
		if ev.Final && ev.Warn != nil {
			fmt.Fprintln(os.Stderr, "warning:", ev.Warn)
		}
	}

	result, err := h.Result()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%d questions delivered.\n", len(result))
	return nil
}

// quizSession runs the interactive answer loop while generation continues
// in the background. Answering marks the consumer active, so questions
// already on screen are never replaced mid-quiz.
func quizSession(ctx context.Context, cmd *cobra.Command, st *store.Store, h *quizgen.Handle) error {
	w := cmd.OutOrStdout()

	// The feed goroutine forwards each newly visible question exactly
	// once. The first event may still replace wholesale; after it, the
	// consumer is active and events are append-only.
	feed := make(chan quiz.Candidate)
	go func() {
		defer close(feed)
		sent := 0
		for ev := range h.Progress() {
			for ; sent < len(ev.Visible); sent++ {
				feed <- ev.Visible[sent]
			}
			if ev.Final && ev.Warn != nil {
				fmt.Fprintln(os.Stderr, "warning:", ev.Warn)
			}
		}
	}()

	tracker := topicstats.NewTracker(nil)
	reader := bufio.NewScanner(cmd.InOrStdin())
	answered, correct := 0, 0
	first := true

	for q := range feed {
		if first {
			h.NotifyConsumerActive()
			first = false
		}

		printQuestion(w, answered+1, q)
		idx, ok := readAnswer(w, reader, len(q.Options))
		if !ok {
			// Input closed: stop quizzing, let generation wind down.
			h.Cancel()
			break
		}

		answered++
		right := idx == q.Correct
		if right {
			correct++
			fmt.Fprintln(w, "Correct.")
		} else {
			fmt.Fprintf(w, "Wrong. The answer is %c.\n", 'a'+q.Correct)
		}
		if q.Explanation != "" {
			fmt.Fprintln(w, q.Explanation)
		}

		if q.Topic != "" {
			tracker.RecordAnswer(q.Topic, right)
			if err := st.Stats().RecordAnswer(ctx, q.Topic, right); err != nil {
				fmt.Fprintln(os.Stderr, "record answer:", err)
			}
		}
	}

	// Drain anything produced before a cancellation took effect so the
	// feed goroutine can exit.
	for range feed {
	}

	if _, err := h.Result(); err != nil && !errors.Is(err, quizgen.ErrSessionCancelled) {
		return err
	}

	fmt.Fprintf(w, "\nScore: %d/%d\n", correct, answered)
	printSessionBreakdown(w, tracker.Stats())
	return nil
}

func readAnswer(w io.Writer, reader *bufio.Scanner, options int) (int, bool) {
	for {
		fmt.Fprint(w, "> ")
		if !reader.Scan() {
			return 0, false
		}
		in := strings.ToLower(strings.TrimSpace(reader.Text()))
		if len(in) == 1 {
			idx := int(in[0] - 'a')
			if idx >= 0 && idx < options {
				return idx, true
			}
		}
		fmt.Fprintf(w, "Answer with a letter a-%c.\n", 'a'+options-1)
	}
}

func printSessionBreakdown(w io.Writer, stats map[string]topicstats.TopicStat) {
	if len(stats) == 0 {
		return
	}
	topics := make([]string, 0, len(stats))
	for t := range stats {
		topics = append(topics, t)
	}
	sort.Strings(topics)

	fmt.Fprintln(w, "This session:")
	for _, t := range topics {
		s := stats[t]
		fmt.Fprintf(w, "  %-30s %d/%d\n", s.Topic, s.CorrectCount, s.TotalAnswered)
	}
}

func printQuestion(w io.Writer, n int, c quiz.Candidate) {
	fmt.Fprintf(w, "\n%d. %s\n", n, c.Text)
	for i, opt := range c.Options {
		fmt.Fprintf(w, "   %c) %s\n", 'a'+i, opt)
	}
}
