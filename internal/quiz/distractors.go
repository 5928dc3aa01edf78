package quiz

import (
	"math/rand"
	"strings"

	"github.com/example/flipcards/pkg/models"
)

// DefaultDistractorCount is the number of wrong options per question
const DefaultDistractorCount = 3

// adjacentSounds lists, per sound, vowels a learner is likely to confuse it with
var adjacentSounds = map[string][]string{
	"aa": {"a", "ee", "oo"},
	"ee": {"e", "ie", "ij"},
	"oo": {"o", "oe", "eu"},
	"uu": {"u", "ui", "eu"},
	"ie": {"i", "ee", "ij"},
	"oe": {"oo", "u", "ui"},
	"eu": {"uu", "oe", "ui"},
	"ui": {"ou", "eu", "ij"},
	"ij": {"ei", "ui", "ee"},
	"ou": {"au", "ui", "oe"},
}

// accumulator collects unique distractors up to a fixed size
type accumulator struct {
	target string
	size   int
	seen   map[string]bool
	items  []string
}

func newAccumulator(target string, size int) *accumulator {
	return &accumulator{
		target: target,
		size:   size,
		seen:   map[string]bool{target: true},
		items:  make([]string, 0, size),
	}
}

func (a *accumulator) full() bool {
	return len(a.items) >= a.size
}

// add takes candidates in order until the accumulator is full
func (a *accumulator) add(candidates []string) {
	for _, c := range candidates {
		if a.full() {
			return
		}
		if c == "" || a.seen[c] {
			continue
		}
		a.seen[c] = true
		a.items = append(a.items, c)
	}
}

// tier produces the candidates of one priority level in visiting order
type tier func(rnd *rand.Rand) []string

// Distractors returns up to n unique wrong answers for word, never equal to
// word.Text. n <= 0 means DefaultDistractorCount.
func (g *Generator) Distractors(lesson *models.Lesson, word models.Word, n int) []string {
	if n <= 0 {
		n = DefaultDistractorCount
	}
	sound := lesson.Sound.Combination

	tiers := []tier{
		func(rnd *rand.Rand) []string { return explicitPool(rnd, lesson) },
		func(rnd *rand.Rand) []string { return sameLessonWords(rnd, lesson) },
		func(rnd *rand.Rand) []string { return siblingLessonWords(rnd, lesson, g.lessons.LessonsBySound(sound)) },
		func(rnd *rand.Rand) []string { return otherSoundWords(rnd, sound, g.lessons) },
		func(rnd *rand.Rand) []string { return soundSubstitutions(rnd, word.Text, sound) },
	}

	acc := newAccumulator(word.Text, n)
	for _, next := range tiers {
		if acc.full() {
			break
		}
		acc.add(next(g.rnd))
	}
	return acc.items
}

// explicitPool is tier 1: the lesson's own distractor list
func explicitPool(rnd *rand.Rand, lesson *models.Lesson) []string {
	return shuffled(rnd, lesson.Distractors)
}

// sameLessonWords is tier 2: the other quiz words of the lesson
func sameLessonWords(rnd *rand.Rand, lesson *models.Lesson) []string {
	return shuffled(rnd, wordTexts(lesson))
}

// siblingLessonWords is tier 3: words of other lessons with the same sound
func siblingLessonWords(rnd *rand.Rand, lesson *models.Lesson, sameSound []models.Lesson) []string {
	var texts []string
	for i := range sameSound {
		if sameSound[i].ID != lesson.ID {
			texts = append(texts, wordTexts(&sameSound[i])...)
		}
	}
	return shuffled(rnd, texts)
}

// otherSoundWords is tier 4: words of lessons for other sounds. Sounds are
// visited in random order, lessons of a sound in catalog order.
func otherSoundWords(rnd *rand.Rand, sound string, lessons LessonSource) []string {
	sounds := make([]string, 0)
	for _, s := range lessons.Sounds() {
		if s != sound {
			sounds = append(sounds, s)
		}
	}
	sounds = shuffled(rnd, sounds)

	var texts []string
	for _, s := range sounds {
		bySound := lessons.LessonsBySound(s)
		for i := range bySound {
			texts = append(texts, shuffled(rnd, wordTexts(&bySound[i]))...)
		}
	}
	return texts
}

// soundSubstitutions is tier 5: the target with its sound swapped for an
// adjacent one. Sounds without a table yield nothing.
func soundSubstitutions(rnd *rand.Rand, target, sound string) []string {
	alternatives, ok := adjacentSounds[sound]
	if !ok || !strings.Contains(target, sound) {
		return nil
	}
	texts := make([]string, 0, len(alternatives))
	for _, alt := range alternatives {
		texts = append(texts, strings.Replace(target, sound, alt, 1))
	}
	return shuffled(rnd, texts)
}

func wordTexts(lesson *models.Lesson) []string {
	words := lesson.QuizWords()
	texts := make([]string, len(words))
	for i, w := range words {
		texts[i] = w.Text
	}
	return texts
}

// shuffled returns a shuffled copy of items
func shuffled(rnd *rand.Rand, items []string) []string {
	out := make([]string, len(items))
	copy(out, items)
	rnd.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
