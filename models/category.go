package models

import "gorm.io/gorm"

type Category struct {
	gorm.Model
	Slug  string `gorm:"unique;not null"`
	Title string `gorm:"not null"`
}
