package models

import "gorm.io/gorm"

// 價格以「分」為單位儲存，避免小數運算誤差
type MenuItem struct {
	gorm.Model
	Title      string `gorm:"not null"`
	Price      uint   `gorm:"not null"`
	Featured   bool   `gorm:"not null;default:false"`
	CategoryID uint   `gorm:"foreignKey:CategoryID"`
	Category   Category
}
