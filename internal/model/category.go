// Package model defines the core domain models used throughout the application.
package model

// Category is one entry in the fixed nutrition taxonomy. The string values
// are persisted and exchanged with downstream consumers, so they are
// case-sensitive contracts and must never change.
type Category string

// The fixed taxonomy. CategoryUnmapped is the universal fallback: every
// classification resolves to something, worst case to it.
const (
	CategoryFruit             Category = "fruit"
	CategoryVegetables        Category = "vegetables"
	CategoryWholeGrains       Category = "whole grains"
	CategoryRefinedGrains     Category = "refined grains"
	CategoryLowFibreCereals   Category = "low-fibre cereals"
	CategoryHighFibreCereals  Category = "high-fibre cereals"
	CategoryDairy             Category = "dairy"
	CategoryEggs              Category = "eggs"
	CategoryLegumes           Category = "legumes"
	CategoryNutsSeeds         Category = "nuts & seeds"
	CategoryOilyFish          Category = "oily fish"
	CategoryRedMeat           Category = "red meat"
	CategoryPoultry           Category = "poultry"
	CategoryProcessedMeats    Category = "processed meats"
	CategoryFriedFoods        Category = "fried foods"
	CategorySweetsDesserts    Category = "sweets & desserts"
	CategorySugaryDrinks      Category = "sugary drinks"
	CategoryWater             Category = "water"
	CategoryCoffeeUnsweetened Category = "coffee/tea (unsweetened)"
	CategoryCoffeeSweetened   Category = "coffee/tea (sweetened)"
	CategoryUnmapped          Category = "unmapped"
)

// Counts maps taxonomy categories to observation counts. A missing key means
// zero; callers must not distinguish "absent" from "observed zero times".
type Counts map[Category]int

// Get returns the count for a category, treating missing keys as zero.
func (c Counts) Get(cat Category) int {
	return c[cat]
}

// Add increments the count for a category by n.
func (c Counts) Add(cat Category, n int) {
	c[cat] += n
}

// Merge adds every count in other into c.
func (c Counts) Merge(other Counts) {
	for cat, n := range other {
		c[cat] += n
	}
}

// Total returns the sum of all counts.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Clone returns an independent copy of the counts.
func (c Counts) Clone() Counts {
	out := make(Counts, len(c))
	for cat, n := range c {
		out[cat] = n
	}
	return out
}
