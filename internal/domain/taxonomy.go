package domain

import "time"

// Category is a flat editorial category.
type Category struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(100);uniqueIndex" json:"name"`
	Slug      string    `gorm:"column:slug;type:varchar(100);uniqueIndex" json:"slug"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Category) TableName() string { return "categories" }

// Tag is a free-form content tag.
type Tag struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(100);uniqueIndex" json:"name"`
	Slug      string    `gorm:"column:slug;type:varchar(100);uniqueIndex" json:"slug"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Tag) TableName() string { return "tags" }
