// Package rules evaluates the fixed behavioral pattern rules over a month's
// category counts. Evaluation is a pure function: same counts and OCR text,
// same flags, no side effects.
package rules

import (
	"regexp"
	"strings"

	"github.com/platewise/platewise/internal/model"
)

// Fixed business thresholds. These cutoffs are contracts with downstream
// goal generation and must not drift.
const (
	lowFibreBelow         = 5
	highSugaryDrinksAtOr  = 2
	highProcessedMeatAtOr = 2
)

// fibrePerHundredRe matches package claims like "6g fibre / 100g" with
// flexible whitespace, case-insensitive.
var fibrePerHundredRe = regexp.MustCompile(`(?i)\b6g\s*fibre\s*/\s*100g\b`)

// Evaluate derives the pattern flags for a month total. Missing categories
// count as zero, so an empty month still triggers the "zero is low" flags.
// Flags are returned in model.AllPatternFlags order; absent flags mean
// false.
func Evaluate(counts model.Counts, ocrText string) []model.PatternFlag {
	var flags []model.PatternFlag

	if counts.Get(model.CategoryFruit)+counts.Get(model.CategoryVegetables) < lowFibreBelow {
		flags = append(flags, model.FlagLowFibre)
	}
	if counts.Get(model.CategorySugaryDrinks) >= highSugaryDrinksAtOr {
		flags = append(flags, model.FlagHighSugaryDrinks)
	}
	if counts.Get(model.CategoryOilyFish) == 0 {
		flags = append(flags, model.FlagLowOmega3)
	}
	if counts.Get(model.CategoryProcessedMeats) >= highProcessedMeatAtOr {
		flags = append(flags, model.FlagHighProcessedMeat)
	}
	if hasHighFibreCerealClaim(ocrText) {
		flags = append(flags, model.FlagHighFibreCerealPresent)
	}

	return flags
}

func hasHighFibreCerealClaim(ocrText string) bool {
	if ocrText == "" {
		return false
	}
	if strings.Contains(strings.ToLower(ocrText), "whole grain") {
		return true
	}
	return fibrePerHundredRe.MatchString(ocrText)
}
