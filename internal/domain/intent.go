package domain

import (
	"github.com/kapu/wiki-answer-bot-go/internal/util"
)

// Category is what kind of answer the user is asking for.
type Category string

const (
	CategoryDefinition Category = "definition"
	CategoryPerson     Category = "person"
	CategoryLocation   Category = "location"
	CategoryTime       Category = "time"
	CategoryReason     Category = "reason"
	CategoryProcess    Category = "process"
	CategoryGeneral    Category = "general"
)

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryDefinition, CategoryPerson, CategoryLocation, CategoryTime,
		CategoryReason, CategoryProcess, CategoryGeneral:
		return true
	default:
		return false
	}
}

// NormalizeCategory maps free text onto a known category, defaulting to general.
func NormalizeCategory(raw string) Category {
	c := Category(util.Normalize(raw))
	if c.IsValid() {
		return c
	}
	return CategoryGeneral
}

type Intent struct {
	Category          Category `json:"category"`
	IsMeasurement     bool     `json:"is_measurement"`
	IsTime            bool     `json:"is_time"`
	NeedsVerification bool     `json:"needs_verification"`
}
