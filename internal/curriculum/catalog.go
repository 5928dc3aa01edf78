package curriculum

import (
	"fmt"

	"github.com/example/flipcards/pkg/models"
)

// Catalog is the reference data: lessons, badges and milestone tiers. It is
// read-only once loading (including AddWords) is done. Lookups of unknown ids
// return nil, never an error.
type Catalog struct {
	lessons    []models.Lesson
	lessonIdx  map[string]int
	badges     []models.Badge
	badgeIdx   map[string]int
	milestones []models.Milestone
}

// New validates the given reference data and builds a catalog from it
func New(lessons []models.Lesson, badges []models.Badge, milestones []models.Milestone) (*Catalog, error) {
	c := &Catalog{
		lessons:    lessons,
		lessonIdx:  make(map[string]int, len(lessons)),
		badges:     badges,
		badgeIdx:   make(map[string]int, len(badges)),
		milestones: milestones,
	}

	for i, l := range lessons {
		if l.ID == "" {
			return nil, fmt.Errorf("lesson at position %d has no id", i)
		}
		if _, dup := c.lessonIdx[l.ID]; dup {
			return nil, fmt.Errorf("duplicate lesson id %s", l.ID)
		}
		if l.Level != models.LevelBeginner && l.Level != models.LevelAdvanced {
			return nil, fmt.Errorf("lesson %s: unknown level %q", l.ID, l.Level)
		}
		c.lessonIdx[l.ID] = i
	}
	for _, l := range lessons {
		if l.Prerequisite != "" {
			if _, ok := c.lessonIdx[l.Prerequisite]; !ok {
				return nil, fmt.Errorf("lesson %s: unknown prerequisite %s", l.ID, l.Prerequisite)
			}
		}
	}

	for i, b := range badges {
		if _, dup := c.badgeIdx[b.ID]; dup {
			return nil, fmt.Errorf("duplicate badge id %s", b.ID)
		}
		if b.Criteria == nil {
			return nil, fmt.Errorf("badge %s has no criteria", b.ID)
		}
		c.badgeIdx[b.ID] = i
	}

	for i := 1; i < len(milestones); i++ {
		if milestones[i].Threshold <= milestones[i-1].Threshold {
			return nil, fmt.Errorf("milestone %s: thresholds must be strictly increasing", milestones[i].Tier)
		}
	}

	return c, nil
}

// LessonByID returns a lesson or nil if the id is unknown
func (c *Catalog) LessonByID(id string) *models.Lesson {
	i, ok := c.lessonIdx[id]
	if !ok {
		return nil
	}
	lesson := c.lessons[i]
	return &lesson
}

// AllLessons returns every lesson in catalog order
func (c *Catalog) AllLessons() []models.Lesson {
	return append([]models.Lesson(nil), c.lessons...)
}

// LessonsBySound returns the lessons for a sound in catalog order
func (c *Catalog) LessonsBySound(sound string) []models.Lesson {
	var lessons []models.Lesson
	for _, l := range c.lessons {
		if l.Sound.Combination == sound {
			lessons = append(lessons, l)
		}
	}
	return lessons
}

// LessonsByPhase returns the lessons of a phase in catalog order
func (c *Catalog) LessonsByPhase(phase int) []models.Lesson {
	var lessons []models.Lesson
	for _, l := range c.lessons {
		if l.Phase == phase {
			lessons = append(lessons, l)
		}
	}
	return lessons
}

// Sounds returns the distinct sounds in order of first appearance
func (c *Catalog) Sounds() []string {
	seen := make(map[string]bool)
	var sounds []string
	for _, l := range c.lessons {
		if !seen[l.Sound.Combination] {
			seen[l.Sound.Combination] = true
			sounds = append(sounds, l.Sound.Combination)
		}
	}
	return sounds
}

// Phases returns the distinct phase numbers in order of first appearance
func (c *Catalog) Phases() []int {
	seen := make(map[int]bool)
	var phases []int
	for _, l := range c.lessons {
		if !seen[l.Phase] {
			seen[l.Phase] = true
			phases = append(phases, l.Phase)
		}
	}
	return phases
}

// AllBadges returns the badge catalog in order
func (c *Catalog) AllBadges() []models.Badge {
	return append([]models.Badge(nil), c.badges...)
}

// BadgeByID returns a badge or nil if the id is unknown
func (c *Catalog) BadgeByID(id string) *models.Badge {
	i, ok := c.badgeIdx[id]
	if !ok {
		return nil
	}
	badge := c.badges[i]
	return &badge
}

// MilestoneTiers returns the tiers in ascending threshold order
func (c *Catalog) MilestoneTiers() []models.Milestone {
	return append([]models.Milestone(nil), c.milestones...)
}

// AddWords appends words to a lesson. Words whose id already exists in the
// lesson are skipped. It returns the number of words added.
func (c *Catalog) AddWords(lessonID string, words []models.Word) (int, error) {
	i, ok := c.lessonIdx[lessonID]
	if !ok {
		return 0, fmt.Errorf("unknown lesson %s", lessonID)
	}

	lesson := &c.lessons[i]
	existing := make(map[string]bool, len(lesson.Words))
	for _, w := range lesson.Words {
		existing[w.ID] = true
	}

	added := 0
	for _, w := range words {
		if existing[w.ID] {
			continue
		}
		existing[w.ID] = true
		lesson.Words = append(lesson.Words, w)
		added++
	}
	return added, nil
}
