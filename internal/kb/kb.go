// Package kb provides read-only access to the knowledge base: condition
// threshold rules, MNT rules, exchange standards, the food catalog, and
// dosha profiles. All lookups are in-process; any disk or network load
// happens before the pipeline runs.
package kb

import (
	"fmt"

	"github.com/kosha-health/ncp-engine/internal/domain"
)

// KB is an in-memory knowledge base. Insertion order is preserved so that
// rule traces and catalog tie-breaks are deterministic.
type KB struct {
	conditions     map[string]domain.ConditionRule
	conditionOrder []string

	mntRules map[string]domain.MNTRule
	mntOrder []string

	standards     map[string]domain.ExchangeStandard
	standardOrder []string

	foods     map[string]domain.FoodRecord
	foodOrder []string

	doshas map[string]domain.DoshaProfile
}

// New creates an empty knowledge base.
func New() *KB {
	return &KB{
		conditions: make(map[string]domain.ConditionRule),
		mntRules:   make(map[string]domain.MNTRule),
		standards:  make(map[string]domain.ExchangeStandard),
		foods:      make(map[string]domain.FoodRecord),
		doshas:     make(map[string]domain.DoshaProfile),
	}
}

// AddCondition registers a condition rule. Re-adding an ID replaces it
// without changing its position.
func (k *KB) AddCondition(rule domain.ConditionRule) {
	if _, ok := k.conditions[rule.ConditionID]; !ok {
		k.conditionOrder = append(k.conditionOrder, rule.ConditionID)
	}
	k.conditions[rule.ConditionID] = rule
}

// AddMNTRule registers an MNT rule.
func (k *KB) AddMNTRule(rule domain.MNTRule) {
	if _, ok := k.mntRules[rule.RuleID]; !ok {
		k.mntOrder = append(k.mntOrder, rule.RuleID)
	}
	k.mntRules[rule.RuleID] = rule
}

// AddStandard registers an exchange standard.
func (k *KB) AddStandard(std domain.ExchangeStandard) {
	if _, ok := k.standards[std.Category]; !ok {
		k.standardOrder = append(k.standardOrder, std.Category)
	}
	k.standards[std.Category] = std
}

// AddFood registers a food record.
func (k *KB) AddFood(food domain.FoodRecord) {
	if _, ok := k.foods[food.FoodID]; !ok {
		k.foodOrder = append(k.foodOrder, food.FoodID)
	}
	k.foods[food.FoodID] = food
}

// AddDosha registers a dosha profile.
func (k *KB) AddDosha(profile domain.DoshaProfile) {
	k.doshas[profile.Dosha] = profile
}

// Condition returns the rule for a condition ID.
func (k *KB) Condition(id string) (domain.ConditionRule, error) {
	rule, ok := k.conditions[id]
	if !ok {
		return domain.ConditionRule{}, domain.NewEngineError(
			domain.ErrConditionNotFound.Code,
			fmt.Sprintf("condition rule %q not found in knowledge base", id))
	}
	return rule, nil
}

// Conditions returns all condition rules in insertion order.
func (k *KB) Conditions() []domain.ConditionRule {
	out := make([]domain.ConditionRule, 0, len(k.conditionOrder))
	for _, id := range k.conditionOrder {
		out = append(out, k.conditions[id])
	}
	return out
}

// MNTRule returns the rule for a rule ID.
func (k *KB) MNTRule(id string) (domain.MNTRule, error) {
	rule, ok := k.mntRules[id]
	if !ok {
		return domain.MNTRule{}, domain.NewEngineError(
			domain.ErrMNTRuleNotFound.Code,
			fmt.Sprintf("MNT rule %q not found in knowledge base", id))
	}
	return rule, nil
}

// MNTRules returns all MNT rules in insertion order.
func (k *KB) MNTRules() []domain.MNTRule {
	out := make([]domain.MNTRule, 0, len(k.mntOrder))
	for _, id := range k.mntOrder {
		out = append(out, k.mntRules[id])
	}
	return out
}

// Standard returns the exchange standard for a category.
func (k *KB) Standard(category string) (domain.ExchangeStandard, error) {
	std, ok := k.standards[category]
	if !ok {
		return domain.ExchangeStandard{}, domain.NewEngineError(
			domain.ErrStandardNotFound.Code,
			fmt.Sprintf("exchange standard %q not found in knowledge base", category))
	}
	return std, nil
}

// Standards returns all exchange standards in insertion order.
func (k *KB) Standards() []domain.ExchangeStandard {
	out := make([]domain.ExchangeStandard, 0, len(k.standardOrder))
	for _, cat := range k.standardOrder {
		out = append(out, k.standards[cat])
	}
	return out
}

// Food returns the record for a food ID.
func (k *KB) Food(id string) (domain.FoodRecord, error) {
	food, ok := k.foods[id]
	if !ok {
		return domain.FoodRecord{}, domain.NewEngineError(
			domain.ErrFoodNotFound.Code,
			fmt.Sprintf("food %q not found in knowledge base", id))
	}
	return food, nil
}

// Foods returns all food records in insertion order.
func (k *KB) Foods() []domain.FoodRecord {
	out := make([]domain.FoodRecord, 0, len(k.foodOrder))
	for _, id := range k.foodOrder {
		out = append(out, k.foods[id])
	}
	return out
}

// FoodsByCategory returns the catalog grouped by exchange category,
// preserving insertion order within each category.
func (k *KB) FoodsByCategory() map[string][]domain.FoodRecord {
	out := make(map[string][]domain.FoodRecord)
	for _, id := range k.foodOrder {
		food := k.foods[id]
		out[food.ExchangeCategory] = append(out[food.ExchangeCategory], food)
	}
	return out
}

// Dosha returns the profile for a dosha name.
func (k *KB) Dosha(name string) (domain.DoshaProfile, error) {
	profile, ok := k.doshas[name]
	if !ok {
		return domain.DoshaProfile{}, domain.NewEngineError(
			domain.ErrDoshaNotFound.Code,
			fmt.Sprintf("dosha profile %q not found in knowledge base", name))
	}
	return profile, nil
}
