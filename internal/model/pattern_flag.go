package model

// PatternFlag is a named boolean signal about a user's eating pattern,
// derived from a month total by fixed threshold rules. A flag not present in
// a result set means false.
type PatternFlag string

// The fixed flag set. The string values are persisted and fed to the goal
// generator, so they are contracts.
const (
	FlagLowFibre               PatternFlag = "LOW_FIBRE"
	FlagHighSugaryDrinks       PatternFlag = "HIGH_SUGARY_DRINKS"
	FlagLowOmega3              PatternFlag = "LOW_OMEGA3"
	FlagHighProcessedMeat      PatternFlag = "HIGH_PROCESSED_MEAT"
	FlagHighFibreCerealPresent PatternFlag = "HIGH_FIBRE_CEREAL_PRESENT"
)

// AllPatternFlags lists every flag in declaration order. Rule evaluation
// emits flags in this order so results are deterministic.
var AllPatternFlags = []PatternFlag{
	FlagLowFibre,
	FlagHighSugaryDrinks,
	FlagLowOmega3,
	FlagHighProcessedMeat,
	FlagHighFibreCerealPresent,
}
