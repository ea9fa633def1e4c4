package taxonomy

import "github.com/platewise/platewise/internal/model"

// defaultCategories is the production taxonomy, in display order.
var defaultCategories = []model.Category{
	model.CategoryFruit,
	model.CategoryVegetables,
	model.CategoryWholeGrains,
	model.CategoryRefinedGrains,
	model.CategoryLowFibreCereals,
	model.CategoryHighFibreCereals,
	model.CategoryDairy,
	model.CategoryEggs,
	model.CategoryLegumes,
	model.CategoryNutsSeeds,
	model.CategoryOilyFish,
	model.CategoryRedMeat,
	model.CategoryPoultry,
	model.CategoryProcessedMeats,
	model.CategoryFriedFoods,
	model.CategorySweetsDesserts,
	model.CategorySugaryDrinks,
	model.CategoryWater,
	model.CategoryCoffeeUnsweetened,
	model.CategoryCoffeeSweetened,
	model.CategoryUnmapped,
}

// defaultExactMatches is the curated dictionary of exact label strings.
// These handle specific branded or packaged items where substring matching
// would be unsafe: "diet cola" must not land in the same bucket as "cola".
var defaultExactMatches = map[string]model.Category{
	"strawberries":         model.CategoryFruit,
	"banana":               model.CategoryFruit,
	"apple":                model.CategoryFruit,
	"watermelon":           model.CategoryFruit,
	"carrot":               model.CategoryVegetables,
	"spinach":              model.CategoryVegetables,
	"broccoli":             model.CategoryVegetables,
	"whole wheat bread":    model.CategoryWholeGrains,
	"brown rice":           model.CategoryWholeGrains,
	"white bread":          model.CategoryRefinedGrains,
	"white rice":           model.CategoryRefinedGrains,
	"cornflakes":           model.CategoryLowFibreCereals,
	"bran flakes":          model.CategoryHighFibreCereals,
	"porridge oats":        model.CategoryHighFibreCereals,
	"milk":                 model.CategoryDairy,
	"greek yogurt":         model.CategoryDairy,
	"boiled egg":           model.CategoryEggs,
	"scrambled eggs":       model.CategoryEggs,
	"lentils":              model.CategoryLegumes,
	"baked beans":          model.CategoryLegumes,
	"chickpeas":            model.CategoryLegumes,
	"almonds":              model.CategoryNutsSeeds,
	"peanut butter":        model.CategoryNutsSeeds,
	"tuna (canned in oil)": model.CategoryOilyFish,
	"salmon fillet":        model.CategoryOilyFish,
	"mackerel":             model.CategoryOilyFish,
	"beef steak":           model.CategoryRedMeat,
	"lamb chop":            model.CategoryRedMeat,
	"grilled chicken":      model.CategoryPoultry,
	"roast turkey":         model.CategoryPoultry,
	"smoked bacon":         model.CategoryProcessedMeats,
	"ham":                  model.CategoryProcessedMeats,
	"salami":               model.CategoryProcessedMeats,
	"french fries":         model.CategoryFriedFoods,
	"fried chicken":        model.CategoryFriedFoods,
	"chocolate":            model.CategorySweetsDesserts,
	"ice cream":            model.CategorySweetsDesserts,
	"cola":                 model.CategorySugaryDrinks,
	"orange juice":         model.CategorySugaryDrinks,
	"lemonade":             model.CategorySugaryDrinks,
	"diet cola":            model.CategoryWater,
	"sparkling water":      model.CategoryWater,
	"coffee":               model.CategoryCoffeeUnsweetened,
	"green tea":            model.CategoryCoffeeUnsweetened,
	"sweetened tea":        model.CategoryCoffeeSweetened,
	"iced latte":           model.CategoryCoffeeSweetened,
}
