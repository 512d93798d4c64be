package models

import "gorm.io/gorm"

// 訂單商品為下單當下購物車商品的不可變快照，之後不再重新計算
type OrderItem struct {
	gorm.Model
	OrderID    uint `gorm:"not null;index"`
	MenuItemID uint `gorm:"foreignKey:MenuItemID"`
	MenuItem   MenuItem
	Quantity   uint `gorm:"not null"`
	UnitPrice  uint `gorm:"not null"`
	Price      uint `gorm:"not null"`
}
