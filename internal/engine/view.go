package engine

import "puzzle-service/internal/domain"

// Phase is the session lifecycle state.
type Phase string

const (
	PhaseLoading    Phase = "loading"
	PhaseReady      Phase = "ready"
	PhaseEvaluating Phase = "evaluating"
	PhaseComplete   Phase = "roundComplete"
)

// View is a read-only snapshot of a session. Exactly one variant field is
// set once content has loaded.
type View struct {
	SessionID string      `json:"sessionId"`
	Kind      domain.Kind `json:"kind"`
	Phase     Phase       `json:"phase"`
	Round     int         `json:"round"`
	Score     int         `json:"score"`

	Matching    *MatchingView    `json:"matching,omitempty"`
	Quiz        *QuizView        `json:"quiz,omitempty"`
	Reveal      *RevealView      `json:"reveal,omitempty"`
	FirstLetter *FirstLetterView `json:"firstLetter,omitempty"`
	Count       *CountView       `json:"count,omitempty"`
	Math        *MathView        `json:"math,omitempty"`
}

// CardView hides the text of cards that are face down.
type CardView struct {
	Text    string `json:"text,omitempty"`
	Side    Side   `json:"side"`
	FaceUp  bool   `json:"faceUp"`
	Matched bool   `json:"matched"`
}

type MatchingView struct {
	Cards        []CardView `json:"cards"`
	MatchedPairs int        `json:"matchedPairs"`
	TotalPairs   int        `json:"totalPairs"`
}

type QuizView struct {
	Title         string   `json:"title"`
	Body          string   `json:"body"`
	QuestionIndex int      `json:"questionIndex"`
	QuestionCount int      `json:"questionCount"`
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"`
	Selected      int      `json:"selected"`
	Feedback      Feedback `json:"feedback,omitempty"`
}

// RevealView shows the word as slots: a letter once its class is guessed,
// "_" otherwise. A lost round shows every letter.
type RevealView struct {
	Category          string       `json:"category"`
	Pictogram         string       `json:"pictogram,omitempty"`
	Hint              bool         `json:"hint"`
	Slots             []string     `json:"slots"`
	Guessed           []string     `json:"guessed"`
	Mistakes          int          `json:"mistakes"`
	RemainingAttempts int          `json:"remainingAttempts"`
	Status            RevealStatus `json:"status"`
	AnswerWord        string       `json:"answerWord,omitempty"`
}

type FirstLetterView struct {
	AnswerWord string   `json:"answerWord"`
	Pictogram  string   `json:"pictogram"`
	Options    []string `json:"options"`
	Chosen     string   `json:"chosen,omitempty"`
	Feedback   Feedback `json:"feedback,omitempty"`
}

type CountView struct {
	Pictogram string   `json:"pictogram"`
	Items     int      `json:"items"`
	Options   []int    `json:"options"`
	Chosen    string   `json:"chosen,omitempty"`
	Feedback  Feedback `json:"feedback,omitempty"`
}

type MathView struct {
	Left     int             `json:"left"`
	Right    int             `json:"right"`
	Operator domain.Operator `json:"operator"`
	Chosen   string          `json:"chosen,omitempty"`
	Feedback Feedback        `json:"feedback,omitempty"`
}
