package models

// Category groups portfolio items. Deletion is blocked while any item,
// active or archived, still references it.
type Category struct {
	Base
	Name string `json:"name" gorm:"uniqueIndex;not null"`

	Items []PortfolioItem `json:"items,omitempty" gorm:"foreignKey:CategoryID"`
}

func (Category) TableName() string { return "categories" }
