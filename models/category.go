package models

// Category groups products. Categories are reference data: the catalog
// client only reads them.
type Category struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"not null"`
}

func (c *Category) TableName() string {
	return "categories"
}
