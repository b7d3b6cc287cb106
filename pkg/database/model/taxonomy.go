// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package model

import "time"

const (
	TableNameDisciplines   = "disciplines"
	TableNameCategories    = "categories"
	TableNameSubcategories = "subcategories"
)

// Discipline is the top level of the skill taxonomy
type Discipline struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement:true" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name
func (*Discipline) TableName() string {
	return TableNameDisciplines
}

// Category belongs to a discipline
type Category struct {
	ID           int64       `gorm:"column:id;primaryKey;autoIncrement:true" json:"id"`
	Name         string      `gorm:"column:name;not null" json:"name"`
	DisciplineID *int64      `gorm:"column:discipline_id;index" json:"discipline_id"`
	Discipline   *Discipline `gorm:"foreignKey:DisciplineID" json:"discipline,omitempty"`
	CreatedAt    time.Time   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name
func (*Category) TableName() string {
	return TableNameCategories
}

// Subcategory belongs to a category
type Subcategory struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement:true" json:"id"`
	Name       string    `gorm:"column:name;not null" json:"name"`
	CategoryID *int64    `gorm:"column:category_id;index" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name
func (*Subcategory) TableName() string {
	return TableNameSubcategories
}
