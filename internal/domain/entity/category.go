package entity

import "slices"

// Category is the fixed classification of a business.
type Category string

const (
	CategoryFoodDining           Category = "Food & Dining"
	CategoryRetailShopping       Category = "Retail & Shopping"
	CategoryHealthMedical        Category = "Health & Medical"
	CategoryProfessionalServices Category = "Professional Services"
	CategoryHomeServices         Category = "Home Services"
	CategoryEducation            Category = "Education"
	CategoryTechnology           Category = "Technology"
	CategoryEntertainment        Category = "Entertainment"
	CategoryOther                Category = "Other"
)

var categories = []Category{
	CategoryFoodDining,
	CategoryRetailShopping,
	CategoryHealthMedical,
	CategoryProfessionalServices,
	CategoryHomeServices,
	CategoryEducation,
	CategoryTechnology,
	CategoryEntertainment,
	CategoryOther,
}

// Categories returns every valid category in display order.
func Categories() []Category {
	return slices.Clone(categories)
}

// String returns the string representation of the Category.
func (c Category) String() string {
	return string(c)
}

// IsValid checks if the Category is one of the enumerated values.
func (c Category) IsValid() bool {
	return slices.Contains(categories, c)
}
