package storage

// NutritionFact is one row of the nutrition table as returned by lookups.
type NutritionFact struct {
	Name         string  `json:"name"`
	Calories     float64 `json:"calories"`
	Proteins     float64 `json:"proteins"`
	Fat          float64 `json:"fat"`
	Carbohydrate float64 `json:"carbohydrate"`
	Description  string  `json:"description"`
}
