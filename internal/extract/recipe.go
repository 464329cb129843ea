// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"

	"github.com/pdiddy/scribe-engine/pkg/types"
)

var (
	ingredientHeadRe = regexp.MustCompile(`(?i)^\s*ingredients?\s*:?\s*$`)
	stepsHeadRe      = regexp.MustCompile(`(?i)^\s*(?:directions?|instructions?|steps|method)\s*:?\s*$`)
	measureRe        = regexp.MustCompile(`(?i)^\s*\d+(?:[./]\d+)?\s?(?:cups?|tbsp|tsp|oz|ounces?|grams?|g|kg|ml|l|lbs?|pounds?|cloves?|slices?|pinch)\b`)
	listPrefixRe     = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s+`)
	stepNumberRe     = regexp.MustCompile(`^\s*\d+[.)]\s+`)
	cookingVerbRe    = regexp.MustCompile(`(?i)^\s*(?:preheat|mix|stir|bake|chop|add|cook|simmer|whisk|pour|heat|serve|combine|fold|knead|grill|roast|season)\b`)
	servingsRe       = regexp.MustCompile(`(?i)serv(?:es|ings?)\s*:?\s*(\d+)`)
	prepTimeRe       = regexp.MustCompile(`(?i)prep(?:aration)?\s*time\s*:?\s*([^\n]+)`)
	cookTimeRe       = regexp.MustCompile(`(?i)cook(?:ing)?\s*time\s*:?\s*([^\n]+)`)
)

// parseMode tracks which recipe section the line scanner is inside.
type parseMode int

const (
	modeNone parseMode = iota
	modeIngredients
	modeSteps
)

// HeuristicRecipe fills RecipeData with a mode-switching line scan: section
// headers flip the mode, measurement or bullet lines are ingredients, and
// numbered or cooking-verb lines are steps.
func HeuristicRecipe(content string) types.RecipeData {
	var data types.RecipeData

	if m := servingsRe.FindStringSubmatch(content); m != nil {
		data.Servings = m[1]
	}
	if m := prepTimeRe.FindStringSubmatch(content); m != nil {
		data.PrepTime = strings.TrimSpace(m[1])
	}
	if m := cookTimeRe.FindStringSubmatch(content); m != nil {
		data.CookTime = strings.TrimSpace(m[1])
	}

	mode := modeNone
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		switch {
		case ingredientHeadRe.MatchString(trimmed):
			mode = modeIngredients
			continue
		case stepsHeadRe.MatchString(trimmed):
			mode = modeSteps
			continue
		}

		if data.Title == "" && mode == modeNone && !isRecipeMeta(trimmed) &&
			!measureRe.MatchString(trimmed) && !stepNumberRe.MatchString(trimmed) &&
			!cookingVerbRe.MatchString(trimmed) && !listPrefixRe.MatchString(trimmed) {
			data.Title = trimmed
			continue
		}

		item := listPrefixRe.ReplaceAllString(trimmed, "")
		switch mode {
		case modeIngredients:
			data.Ingredients = append(data.Ingredients, item)
		case modeSteps:
			data.Steps = append(data.Steps, item)
		default:
			// Outside any declared section, classify the line by shape.
			switch {
			case measureRe.MatchString(trimmed):
				data.Ingredients = append(data.Ingredients, item)
			case stepNumberRe.MatchString(trimmed) || cookingVerbRe.MatchString(trimmed):
				data.Steps = append(data.Steps, item)
			}
		}
	}

	return data
}

// isRecipeMeta reports whether a line is a servings or time annotation
// rather than a title candidate.
func isRecipeMeta(line string) bool {
	return servingsRe.MatchString(line) || prepTimeRe.MatchString(line) || cookTimeRe.MatchString(line)
}
