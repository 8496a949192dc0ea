package engine

import (
	"context"
	"slices"
	"testing"

	"puzzle-service/internal/domain"
)

func revealContent(word string) domain.RevealContent {
	return domain.RevealContent{AnswerWord: word, Category: "חיות", Pictogram: "🐕"}
}

func TestRevealWinsInAnyOrder(t *testing.T) {
	for _, order := range [][]string{{"ב", "כ", "ל"}, {"ל", "ב", "כ"}, {"כ", "ל", "ב"}} {
		s, sc := loaded(t, revealContent("כֶּלֶב"))
		ctx := context.Background()
		for i, g := range order {
			s.Handle(ctx, Guess{Letter: g})
			if i < len(order)-1 && s.View().Reveal.Status != RevealPlaying {
				t.Fatalf("order %v: finished early after %s", order, g)
			}
		}
		v := s.View()
		if v.Reveal.Status != RevealWon || v.Phase != PhaseComplete {
			t.Fatalf("order %v: expected won, got %s %s", order, v.Reveal.Status, v.Phase)
		}
		if sc.Total() != RevealPoints {
			t.Fatalf("order %v: expected %d points, got %d", order, RevealPoints, sc.Total())
		}
		if !slices.Equal(v.Reveal.Slots, []string{"כ", "ל", "ב"}) {
			t.Fatalf("unexpected slots %v", v.Reveal.Slots)
		}
	}
}

func TestRevealLosesAfterSixMisses(t *testing.T) {
	s, sc := loaded(t, revealContent("כֶּלֶב"))
	ctx := context.Background()

	for i, g := range []string{"א", "ג", "ד", "ה", "ו"} {
		s.Handle(ctx, Guess{Letter: g})
		if rv := s.View().Reveal; rv.RemainingAttempts != MaxMistakes-i-1 || rv.Status != RevealPlaying {
			t.Fatalf("after %d misses got %+v", i+1, rv)
		}
	}
	if rv := s.View().Reveal; !slices.Equal(rv.Slots, []string{"_", "_", "_"}) || rv.Pictogram != "" {
		t.Fatalf("word must stay hidden while playing, got %+v", rv)
	}

	s.Handle(ctx, Guess{Letter: "ז"})
	rv := s.View().Reveal
	if rv.Status != RevealLost || rv.Mistakes != MaxMistakes {
		t.Fatalf("expected lost, got %+v", rv)
	}
	if !slices.Equal(rv.Slots, []string{"כ", "ל", "ב"}) || rv.AnswerWord != "כֶּלֶב" {
		t.Fatalf("lost round should reveal the word, got %+v", rv)
	}
	if sc.Total() != 0 {
		t.Fatalf("lost round scores nothing")
	}
	if cmds := s.Handle(ctx, Guess{Letter: "כ"}); cmds != nil || s.View().Reveal.Status != RevealLost {
		t.Fatalf("guesses after the end must be ignored")
	}
}

func TestRevealFinalForms(t *testing.T) {
	s, sc := loaded(t, revealContent("מֶלֶךְ"))
	ctx := context.Background()

	s.Handle(ctx, Guess{Letter: "כ"})
	rv := s.View().Reveal
	if !slices.Equal(rv.Slots, []string{"_", "_", "ך"}) {
		t.Fatalf("standard form should reveal the final letter, got %v", rv.Slots)
	}
	if cmds := s.Handle(ctx, Guess{Letter: "ך"}); cmds != nil {
		t.Fatalf("final form of a guessed letter must be ignored")
	}
	s.Handle(ctx, Guess{Letter: "ם"})
	s.Handle(ctx, Guess{Letter: "ל"})
	if s.View().Reveal.Status != RevealWon || sc.Total() != RevealPoints {
		t.Fatalf("expected a win, got %+v", s.View().Reveal)
	}
}

func TestRevealIgnoresInvalidGuesses(t *testing.T) {
	s, _ := loaded(t, revealContent("כלב"))
	ctx := context.Background()

	for _, g := range []string{"", "a", "כל", "7"} {
		if cmds := s.Handle(ctx, Guess{Letter: g}); cmds != nil {
			t.Fatalf("guess %q must be ignored", g)
		}
	}
	s.Handle(ctx, Guess{Letter: "א"})
	s.Handle(ctx, Guess{Letter: "א"})
	if rv := s.View().Reveal; rv.Mistakes != 1 || len(rv.Guessed) != 1 {
		t.Fatalf("repeated guess must not count twice, got %+v", rv)
	}
}

func TestRevealHintAndNext(t *testing.T) {
	s, _ := loaded(t, revealContent("כלב"))
	ctx := context.Background()

	if cmds := s.Handle(ctx, Next{}); cmds != nil {
		t.Fatalf("next before the end must be ignored")
	}
	s.Handle(ctx, ToggleHint{})
	if rv := s.View().Reveal; !rv.Hint || rv.Pictogram != "🐕" {
		t.Fatalf("hint should show the pictogram, got %+v", rv)
	}
	for _, g := range []string{"כ", "ל", "ב"} {
		s.Handle(ctx, Guess{Letter: g})
	}
	cmds := s.Handle(ctx, Next{})
	if len(cmds) != 1 || s.Phase() != PhaseLoading {
		t.Fatalf("next after the end should start a round, got %v", cmds)
	}
}
