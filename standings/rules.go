package standings

import "github.com/Dosada05/atletica-scoreboard/models"

// RuleBook resolves the score rule for a modality: the modality's override
// when one exists, otherwise the default.
type RuleBook struct {
	Default   models.ScoreRule
	Overrides map[int]models.ScoreRule
}

// DefaultRuleBook uses models.DefaultScoreRule for every modality.
func DefaultRuleBook() RuleBook {
	return RuleBook{Default: models.DefaultScoreRule}
}

// NewRuleBook builds a RuleBook from stored per-modality overrides.
func NewRuleBook(def models.ScoreRule, overrides []models.ModalityScoreRule) RuleBook {
	book := RuleBook{Default: def}
	if len(overrides) > 0 {
		book.Overrides = make(map[int]models.ScoreRule, len(overrides))
		for _, o := range overrides {
			book.Overrides[o.ModalityID] = o.Points
		}
	}
	return book
}

func (b RuleBook) RuleFor(modalityID int) models.ScoreRule {
	if rule, ok := b.Overrides[modalityID]; ok {
		return rule
	}
	if len(b.Default) == 0 {
		return models.DefaultScoreRule
	}
	return b.Default
}
