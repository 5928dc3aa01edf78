package curriculum

import (
	_ "embed"
	"fmt"

	"github.com/example/flipcards/pkg/models"
	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var defaultCatalog []byte

// catalogFile mirrors the layout of data/catalog.yaml
type catalogFile struct {
	Milestones []models.Milestone `yaml:"milestones"`
	Badges     []badgeEntry       `yaml:"badges"`
	Lessons    []models.Lesson    `yaml:"lessons"`
}

type badgeEntry struct {
	ID          string           `yaml:"id"`
	Icon        string           `yaml:"icon"`
	Name        models.Localized `yaml:"name"`
	Description models.Localized `yaml:"description"`
	Criteria    yaml.Node        `yaml:"criteria"`
}

// criteriaDecoders turns a criteria mapping into its typed rule. Adding a new
// badge rule means adding one entry here.
var criteriaDecoders = map[models.CriteriaKind]func(*yaml.Node) (models.BadgeCriteria, error){
	models.CriteriaZeroScoreRetry:   decodeCriteria[models.ZeroScoreRetry],
	models.CriteriaQuizPassCount:    decodeCriteria[models.QuizPassCount],
	models.CriteriaFailThenPass:     decodeCriteria[models.FailThenPass],
	models.CriteriaPerfectQuiz:      decodeCriteria[models.PerfectQuiz],
	models.CriteriaLessonsCompleted: decodeCriteria[models.LessonsCompleted],
	models.CriteriaSoundMastery:     decodeCriteria[models.SoundMastery],
}

func decodeCriteria[T models.BadgeCriteria](node *yaml.Node) (models.BadgeCriteria, error) {
	var c T
	if err := node.Decode(&c); err != nil {
		return nil, err
	}
	return c, nil
}

// Load parses the embedded default catalog
func Load() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Parse decodes and validates a catalog document
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	badges := make([]models.Badge, 0, len(file.Badges))
	for _, entry := range file.Badges {
		criteria, err := parseCriteria(&entry.Criteria)
		if err != nil {
			return nil, fmt.Errorf("badge %s: %w", entry.ID, err)
		}
		badges = append(badges, models.Badge{
			ID:          entry.ID,
			Name:        entry.Name,
			Description: entry.Description,
			Icon:        entry.Icon,
			Criteria:    criteria,
		})
	}

	return New(file.Lessons, badges, file.Milestones)
}

func parseCriteria(node *yaml.Node) (models.BadgeCriteria, error) {
	var head struct {
		Type models.CriteriaKind `yaml:"type"`
	}
	if err := node.Decode(&head); err != nil {
		return nil, fmt.Errorf("invalid criteria: %w", err)
	}
	decode, ok := criteriaDecoders[head.Type]
	if !ok {
		return nil, fmt.Errorf("unknown criteria type %q", head.Type)
	}
	return decode(node)
}
