package quizgen

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/omerk/quizforge/internal/history"
	"github.com/omerk/quizforge/internal/quiz"
	"github.com/omerk/quizforge/internal/topicstats"
)

// Service drives quiz-generation sessions. Each session runs as one
// sequential task: batches are issued one at a time so cancellation and
// consumer-interaction checks are honored between batches. Independent
// sessions run concurrently and share only the history window and the
// caller's topic stats.
type Service struct {
	store  QuestionSource
	gen    Generator
	window *history.Window
	cfg    Config
}

// NewService creates a Service. Either source may be nil; at least one
// must be usable for the requested mix when a session starts.
func NewService(store QuestionSource, gen Generator, window *history.Window, cfg Config) *Service {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultConfig().BatchSize
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = DefaultConfig().CallTimeout
	}
	return &Service{store: store, gen: gen, window: window, cfg: cfg}
}

// Request describes one "produce N unique questions" session.
type Request struct {
	// Target is the number of unique questions wanted.
	Target int

	// Stats is the caller's per-topic answer history, read-only input to
	// the weak/strong sampler.
	Stats map[string]topicstats.TopicStat

	// Mix selects the sources to draw from.
	Mix SourceMix

	// DocID scopes store fetches to one document corpus.
	DocID string

	// DocContext is the material passed to generation calls.
	DocContext string
}

// StartSession validates the request and launches the session. Progress
// is streamed through the returned handle.
func (s *Service) StartSession(ctx context.Context, req Request) (*Handle, error) {
	if req.Target <= 0 {
		return nil, fmt.Errorf("target count must be positive, got %d", req.Target)
	}
	if s.store == nil && req.Mix == MixStoreOnly {
		return nil, fmt.Errorf("source mix requires a question store, none configured")
	}
	if s.gen == nil && req.Mix == MixGeneratorOnly {
		return nil, fmt.Errorf("source mix requires a generator, none configured")
	}
	if s.store == nil && s.gen == nil {
		return nil, fmt.Errorf("no question sources configured")
	}

	batches := (req.Target + s.cfg.BatchSize - 1) / s.cfg.BatchSize

	sctx, cancel := context.WithCancel(ctx)
	h := newHandle(uuid.NewString(), cancel, batches+2)

	go s.run(sctx, req, h)
	return h, nil
}

// run is the per-session scheduler loop.
func (s *Service) run(ctx context.Context, req Request, h *Handle) {
	h.setState(StateGenerating)

	var accumulated []quiz.Candidate
	var fingerprints []string
	dedup := &Deduplicator{Window: s.window}

	batches := (req.Target + s.cfg.BatchSize - 1) / s.cfg.BatchSize
	attempted, failed := 0, 0

	for i := 0; i < batches && len(accumulated) < req.Target; i++ {
		if ctx.Err() != nil {
			h.finish(StateAborted, nil, nil, ErrSessionCancelled)
			return
		}

		// Later batches shrink as the target is approached.
		remaining := req.Target - len(accumulated)
		size := min(s.cfg.BatchSize, remaining)
		plan := topicstats.Split(req.Stats, size)

		attempted++
		got, err := s.collectBatch(ctx, req, plan, size, fingerprints)
		if err != nil {
			if ctx.Err() != nil {
				h.finish(StateAborted, nil, nil, ErrSessionCancelled)
				return
			}
			// A single batch failure is non-fatal.
			failed++
			s.logf("session %s: batch %d/%d failed: %v", h.ID(), i+1, batches, err)
			continue
		}

		accepted, rejected := dedup.Filter(got, fingerprints)

		// One bounded replacement round per deficit; general-sourced so
		// progress beats strict topic adherence.
		deficit := size - len(accepted)
		for round := 0; round < s.cfg.ReplacementRounds && deficit > 0 && rejected > 0; round++ {
			seen := append(append([]string{}, fingerprints...), quiz.Fingerprints(accepted)...)
			more, rerr := s.fetchSub(ctx, req, nil, deficit, seen)
			if rerr != nil {
				s.logf("session %s: replacement round failed: %v", h.ID(), rerr)
				break
			}
			extra, _ := dedup.Filter(more, seen)
			accepted = append(accepted, extra...)
			deficit = size - len(accepted)
		}

		// Re-evaluate after the blocking calls, before committing: a
		// cancelled session discards the in-flight batch entirely.
		if ctx.Err() != nil {
			h.finish(StateAborted, nil, nil, ErrSessionCancelled)
			return
		}

		if len(accepted) > remaining {
			accepted = accepted[:remaining]
		}
		if len(accepted) == 0 {
			continue
		}

		accumulated = append(accumulated, accepted...)
		fingerprints = append(fingerprints, quiz.Fingerprints(accepted)...)

		mut := h.guard.Reconcile(h.currentVisible(), accumulated, h.isActive())
		h.commit(mut)
	}

	if ctx.Err() != nil {
		h.finish(StateAborted, nil, nil, ErrSessionCancelled)
		return
	}

	if len(accumulated) == 0 && attempted > 0 && failed == attempted {
		h.finish(StateAborted, nil, nil, ErrNoCandidates)
		return
	}

	h.setState(StateFinalizing)

	// Delivered questions stay suppressed across future sessions.
	if s.window != nil {
		for _, c := range accumulated {
			s.window.Record(c.Text)
		}
	}

	var warn error
	if len(accumulated) < req.Target {
		warn = &ShortfallWarning{Target: req.Target, Delivered: len(accumulated)}
	}
	h.finish(StateDone, accumulated, warn, nil)
}

// collectBatch gathers one batch according to the sampler plan, weak
// sub-count before strong. An empty topic group with a nonzero count
// falls back to a general request for that sub-count.
func (s *Service) collectBatch(ctx context.Context, req Request, plan topicstats.Plan, size int, prior []string) ([]quiz.Candidate, error) {
	type subReq struct {
		topics []string
		count  int
	}

	var subs []subReq
	if plan.Differentiated {
		if plan.Weak > 0 {
			subs = append(subs, subReq{topics: plan.WeakTopics, count: plan.Weak})
		}
		if plan.Strong > 0 {
			subs = append(subs, subReq{topics: plan.StrongTopics, count: plan.Strong})
		}
	} else {
		subs = []subReq{{count: size}}
	}

	var out []quiz.Candidate
	var errs []error
	for _, sub := range subs {
		got, err := s.fetchSub(ctx, req, sub.topics, sub.count, prior)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, got...)
	}

	if len(out) == 0 && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

// fetchSub queries the enabled sources for one sub-count. With both
// sources enabled the store is tried first and the generator covers the
// remainder. Every source call carries its own bounded timeout; a
// timeout is indistinguishable from a failure.
func (s *Service) fetchSub(ctx context.Context, req Request, topics []string, count int, prior []string) ([]quiz.Candidate, error) {
	useStore := s.store != nil && req.Mix != MixGeneratorOnly
	useGen := s.gen != nil && req.Mix != MixStoreOnly

	var out []quiz.Candidate
	var errs []error

	if useStore {
		cctx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
		got, err := s.store.FetchQuestions(cctx, req.DocID, topics, count)
		cancel()
		if err != nil {
			errs = append(errs, &SourceUnavailableError{Source: "store", Err: err})
		} else {
			out = append(out, got...)
		}
	}

	if useGen && len(out) < count {
		cctx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
		got, err := s.gen.Generate(cctx, GenerateRequest{
			Topics:     topics,
			DocContext: req.DocContext,
			Count:      count - len(out),
			Prior:      prior,
		})
		cancel()
		if err != nil {
			errs = append(errs, &SourceUnavailableError{Source: "generator", Err: err})
		} else {
			out = append(out, got...)
		}
	}

	if len(out) == 0 && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

func (s *Service) logf(format string, args ...any) {
	if s.cfg.Logf != nil {
		s.cfg.Logf(format, args...)
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
