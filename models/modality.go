package models

import "strings"

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderMixed  Gender = "Misto"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderMixed:
		return true
	}
	return false
}

type ModalityStatus string

const (
	ModalityPending  ModalityStatus = "pending"
	ModalityFinished ModalityStatus = "finished"
)

func (s ModalityStatus) Valid() bool {
	return s == ModalityPending || s == ModalityFinished
}

// Modality is a single sport/event category inside a competition, e.g. "Futsal (M)".
type Modality struct {
	ID            int            `json:"id" db:"id"`
	CompetitionID int            `json:"competition_id" db:"competition_id"`
	Name          string         `json:"name" db:"name"`
	Gender        Gender         `json:"gender" db:"gender"`
	Status        ModalityStatus `json:"status" db:"status"`
}

// collectiveModalities lists the sports decided by a knockout bracket.
var collectiveModalities = []string{
	"Vôlei de Praia", "Voleibol", "Tênis", "Basquetebol",
	"Futebol", "Futsal", "Handebol",
}

// IsCollective reports whether results for the modality may be entered as a bracket.
func (m Modality) IsCollective() bool {
	for _, name := range collectiveModalities {
		if strings.Contains(m.Name, name) {
			return true
		}
	}
	return false
}

// ModalitySeed is a modality template created with every new competition.
type ModalitySeed struct {
	Name   string
	Gender Gender
}

var DefaultModalitySeeds = []ModalitySeed{
	{"Atletismo", GenderMale},
	{"Atletismo", GenderFemale},
	{"Basquetebol", GenderMale},
	{"Basquetebol", GenderFemale},
	{"Futebol de Campo", GenderMale},
	{"Futsal", GenderMale},
	{"Futsal", GenderFemale},
	{"Handebol", GenderMale},
	{"Handebol", GenderFemale},
	{"Judô", GenderMale},
	{"Judô", GenderFemale},
	{"Natação", GenderMale},
	{"Natação", GenderFemale},
	{"Tênis", GenderMale},
	{"Tênis", GenderFemale},
	{"Tênis de Mesa", GenderMale},
	{"Tênis de Mesa", GenderFemale},
	{"Vôlei de Praia", GenderMale},
	{"Vôlei de Praia", GenderFemale},
	{"Voleibol", GenderMale},
	{"Voleibol", GenderFemale},
	{"Xadrez", GenderMixed},
}
