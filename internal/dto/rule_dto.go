package dto

import (
	"time"

	"github.com/finsight-hq/finsight_backend/internal/core/domain"
)

// CreateRuleRequest defines the payload for creating a categorization rule.
type CreateRuleRequest struct {
	Keyword        string `json:"keyword" binding:"required"`
	TargetCategory string `json:"targetCategory" binding:"required"`
	TargetType     string `json:"targetType" binding:"omitempty,oneof=INCOME EXPENSE"`
}

// UpdateRuleRequest defines the payload for updating a rule. Nil fields are
// left unchanged; an empty TargetType clears the type constraint.
type UpdateRuleRequest struct {
	Keyword        *string `json:"keyword"`
	TargetCategory *string `json:"targetCategory"`
	TargetType     *string `json:"targetType" binding:"omitempty,oneof=INCOME EXPENSE"`
}

// RuleResponse is the API shape of a categorization rule.
type RuleResponse struct {
	RuleID         string    `json:"ruleID"`
	Keyword        string    `json:"keyword"`
	TargetCategory string    `json:"targetCategory"`
	TargetType     string    `json:"targetType,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	LastUpdatedAt  time.Time `json:"lastUpdatedAt"`
}

// ApplyRulesResponse reports the outcome of a bulk rule run.
type ApplyRulesResponse struct {
	Updated int `json:"updated"`
}

// ToRuleResponse maps a domain rule to its API shape.
func ToRuleResponse(r domain.CategorizationRule) RuleResponse {
	return RuleResponse{
		RuleID:         r.RuleID,
		Keyword:        r.Keyword,
		TargetCategory: r.TargetCategory,
		TargetType:     string(r.TargetType),
		CreatedAt:      r.CreatedAt,
		LastUpdatedAt:  r.LastUpdatedAt,
	}
}
