package models

// MaterialType classifies study materials.
type MaterialType string

const (
	MaterialPastPaper MaterialType = "past_paper"
	MaterialNotes     MaterialType = "notes"
	MaterialTest      MaterialType = "test"
	MaterialResearch  MaterialType = "research"
	MaterialTimetable MaterialType = "timetable"
	MaterialReport    MaterialType = "report"
)

// MaterialTypes lists every accepted material type.
var MaterialTypes = []MaterialType{
	MaterialPastPaper, MaterialNotes, MaterialTest, MaterialResearch, MaterialTimetable, MaterialReport,
}

// Valid reports whether t is a known material type.
func (t MaterialType) Valid() bool {
	for _, known := range MaterialTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ProductCategory classifies marketplace listings.
type ProductCategory string

const (
	CategoryElectronics   ProductCategory = "electronics"
	CategoryBooks         ProductCategory = "books"
	CategoryClothing      ProductCategory = "clothing"
	CategoryFurniture     ProductCategory = "furniture"
	CategoryStationery    ProductCategory = "stationery"
	CategoryAccommodation ProductCategory = "accommodation"
	CategoryServices      ProductCategory = "services"
	CategoryOther         ProductCategory = "other"
)

// ProductCategories lists every accepted product category.
var ProductCategories = []ProductCategory{
	CategoryElectronics, CategoryBooks, CategoryClothing, CategoryFurniture,
	CategoryStationery, CategoryAccommodation, CategoryServices, CategoryOther,
}

// Valid reports whether c is a known category.
func (c ProductCategory) Valid() bool {
	for _, known := range ProductCategories {
		if c == known {
			return true
		}
	}
	return false
}

// InteractionPolicy controls who may post in a group.
type InteractionPolicy string

const (
	// PolicyEveryone lets any follower post.
	PolicyEveryone InteractionPolicy = "everyone"
	// PolicyAdminsOnly restricts posting to the group admin.
	PolicyAdminsOnly InteractionPolicy = "admins_only"
)

// Valid reports whether p is a known policy.
func (p InteractionPolicy) Valid() bool {
	return p == PolicyEveryone || p == PolicyAdminsOnly
}
