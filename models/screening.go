package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// InstrumentName identifies a screening questionnaire.
type InstrumentName string

const (
	InstrumentPHQ9 InstrumentName = "phq9"
	InstrumentGAD7 InstrumentName = "gad7"
)

// RiskLevel is a named severity band derived from a total score.
type RiskLevel string

const (
	RiskMinimal          RiskLevel = "minimal"
	RiskMild             RiskLevel = "mild"
	RiskModerate         RiskLevel = "moderate"
	RiskModeratelySevere RiskLevel = "moderately_severe"
	RiskSevere           RiskLevel = "severe"
)

var riskRank = map[RiskLevel]int{
	RiskMinimal:          0,
	RiskMild:             1,
	RiskModerate:         2,
	RiskModeratelySevere: 3,
	RiskSevere:           4,
}

// Rank orders risk levels by severity; unknown levels rank -1.
func (r RiskLevel) Rank() int {
	if rank, ok := riskRank[r]; ok {
		return rank
	}
	return -1
}

// Option is one Likert choice.
type Option struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// Question is a single questionnaire item.
type Question struct {
	ID      int      `json:"id"`
	Prompt  string   `json:"text"`
	Options []Option `json:"options"`
}

// ErrIncompleteResponseSet reports answers that do not cover every question
// of an instrument exactly once with an in-range value.
var ErrIncompleteResponseSet = errors.New("incomplete response set")

// ScreeningResponseSet maps question id to the chosen value.
type ScreeningResponseSet map[int]int

// UnmarshalJSON reads {"1": 0, "2": 3, ...}. Keys must be canonical
// decimal ids ("01" and "+1" are rejected) and may appear only once.
func (s *ScreeningResponseSet) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return fmt.Errorf("%w: responses must be an object", ErrIncompleteResponseSet)
	}

	set := make(ScreeningResponseSet)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrIncompleteResponseSet, err)
		}
		key, _ := tok.(string)
		id, err := strconv.Atoi(key)
		if err != nil || strconv.Itoa(id) != key {
			return fmt.Errorf("%w: invalid question id %q", ErrIncompleteResponseSet, key)
		}
		if _, dup := set[id]; dup {
			return fmt.Errorf("%w: question %d answered twice", ErrIncompleteResponseSet, id)
		}

		var value int
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("%w: question %d: %v", ErrIncompleteResponseSet, id, err)
		}
		set[id] = value
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: %v", ErrIncompleteResponseSet, err)
	}

	*s = set
	return nil
}

// ScreeningRequest is the body of POST /api/screening/:type.
type ScreeningRequest struct {
	UserID    string               `json:"user_id,omitempty"`
	Responses ScreeningResponseSet `json:"responses" binding:"required"`
	Lang      string               `json:"lang,omitempty"`
}

// ScreeningResult is derived on every submission and never stored.
type ScreeningResult struct {
	Instrument        InstrumentName `json:"instrument"`
	TotalScore        int            `json:"total_score"`
	MaxScore          int            `json:"max_score"`
	RiskLevel         RiskLevel      `json:"risk_level"`
	Recommendations   []string       `json:"recommendations"`
	NeedImmediateHelp bool           `json:"need_immediate_help"`
}

// InstrumentSummary is the listing view of an instrument.
type InstrumentSummary struct {
	Name          InstrumentName `json:"id"`
	Title         string         `json:"name"`
	Description   string         `json:"description"`
	Duration      string         `json:"duration"`
	QuestionCount int            `json:"question_count"`
}

// InstrumentView is a localised instrument ready for display.
type InstrumentView struct {
	InstrumentSummary
	Locale    Locale     `json:"locale"`
	Questions []Question `json:"questions"`
}
