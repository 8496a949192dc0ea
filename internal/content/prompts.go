package content

import "puzzle-service/internal/domain"

const jsonOnly = `

IMPORTANT: Return ONLY valid JSON. No Markdown formatting, no code blocks, just the raw JSON string.`

var templates = map[domain.Kind]string{
	domain.KindQuiz: `Write a short, engaging story in Hebrew for a 2nd grade child.
The story must be fully vocalized (with Nikud).
Structure the response as a JSON object with this schema:
{
  "title": "Story title",
  "body": "The full story text",
  "questions": [
    {"prompt": "Question 1?", "options": ["A", "B", "C", "D"], "correctIndex": 0},
    {"prompt": "Question 2?", "options": ["A", "B", "C", "D"], "correctIndex": 2}
  ]
}
Include exactly 2 multiple choice questions with 4 different options each.`,

	domain.KindMatching: `Generate 8 pairs of basic Hebrew-English words for a memory game for kids.
The Hebrew words must have Nikud. Words should be simple nouns: animals, colors, family, objects.
Response schema (JSON array of exactly 8 items, ids 1 to 8):
[
  {"id": 1, "sideA": "כֶּלֶב", "sideB": "Dog"}
]`,

	domain.KindReveal: `Choose a random simple concept (animal, fruit, object) for a Hangman game.
Provide a single Hebrew word (with Nikud, no spaces), its category, and a relevant emoji.
Response schema (JSON object):
{"answerWord": "תַּפּוּחַ", "category": "פֵּרוֹת", "pictogram": "🍎"}`,

	domain.KindFirstLetter: `Choose a simple object for a preschool "First Letter" matching game.
Provide the word in Hebrew (with Nikud), its first letter, 2 different wrong letters, and an emoji.
Response schema (JSON object):
{"answerWord": "כֶּלֶב", "letter": "כ", "options": ["כ", "ל", "מ"], "pictogram": "🐶"}
The options must contain the correct letter exactly once.`,
}

// Template returns the generator instruction for kind, or "" for kinds that
// are built locally.
func Template(kind domain.Kind) string {
	t, ok := templates[kind]
	if !ok {
		return ""
	}
	return t + jsonOnly
}
