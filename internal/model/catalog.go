package model

// Tag is a reference label attached to recipes (many-to-many).
// Name, color and slug are each globally unique.
type Tag struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"uniqueIndex;size:200;not null"`
	Color string `json:"color" gorm:"uniqueIndex;size:7;not null;default:'#FFFFFF'"` // #RRGGBB or #RGB
	Slug  string `json:"slug" gorm:"uniqueIndex;size:200;not null"`
}

// Ingredient is reference data: a name together with its measurement
// unit. The pair is unique; "Salt g" and "Salt kg" are distinct rows.
type Ingredient struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	Name            string `json:"name" gorm:"size:200;not null;index;uniqueIndex:idx_ingredient_name_unit"`
	MeasurementUnit string `json:"measurement_unit" gorm:"size:64;not null;uniqueIndex:idx_ingredient_name_unit"`
}
