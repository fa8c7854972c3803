package services

import "errors"

var (
	ErrNotFound         = errors.New("requested resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrConflict         = errors.New("resource conflict")

	ErrCompetitionNotFound = errors.New("competition not found")
	ErrNoActiveCompetition = errors.New("no active competition")
	ErrAthleticNotFound    = errors.New("athletic not found")
	ErrModalityNotFound    = errors.New("modality not found")
	ErrResultNotFound      = errors.New("result not found")
	ErrPenaltyNotFound     = errors.New("penalty not found")
	ErrScoreRuleNotFound   = errors.New("score rule override not found")
	ErrCategoryNotFound    = errors.New("finance category not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrProductNotFound     = errors.New("product not found")

	ErrAthleticNameConflict = errors.New("athletic name is already in use")
	ErrModalityConflict     = errors.New("modality already exists in this competition")
	ErrCategoryNameConflict = errors.New("finance category name is already in use")
	ErrCategoryInUse        = errors.New("finance category is used by transactions")
	ErrInsufficientStock    = errors.New("stock cannot go below zero")

	ErrModalityNotInCompetition = errors.New("modality does not belong to this competition")
	ErrRankOutOfRange           = errors.New("rank must be between 1 and 8")
	ErrUnknownRankingAthletic   = errors.New("ranking references an unknown athletic")
	ErrDuplicateRankingAthletic = errors.New("athletic appears more than once in the ranking")
	ErrEmptyRanking             = errors.New("ranking must place at least one athletic")
	ErrBracketNotAllowed        = errors.New("bracket entry is only available for collective modalities")
	ErrInvalidBracket           = errors.New("invalid bracket")
	ErrScoreRuleOverridesOff    = errors.New("per-modality score rules are disabled")

	ErrPublishingDisabled = errors.New("standings publishing is not configured")
)
