package enums

import "fmt"

// ProductCategory buckets catalog entries by product family.
type ProductCategory string

const (
	ProductCategoryPerfume  ProductCategory = "PERFUME"
	ProductCategoryDiffuser ProductCategory = "DIFFUSER"
	ProductCategoryCandle   ProductCategory = "CANDLE"
	ProductCategoryBodycare ProductCategory = "BODYCARE"
	ProductCategorySample   ProductCategory = "SAMPLE"
)

var validProductCategories = []ProductCategory{
	ProductCategoryPerfume,
	ProductCategoryDiffuser,
	ProductCategoryCandle,
	ProductCategoryBodycare,
	ProductCategorySample,
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the category is recognized.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts a raw string into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}
