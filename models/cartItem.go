package models

import "gorm.io/gorm"

// 購物車商品，UnitPrice為加入購物車當下的菜單價格快照，
// 之後菜單調價不影響已存在的購物車商品
type CartItem struct {
	gorm.Model
	UserID     uint `gorm:"not null;index"`
	MenuItemID uint `gorm:"foreignKey:MenuItemID"`
	MenuItem   MenuItem
	Quantity   uint `gorm:"not null"`
	UnitPrice  uint `gorm:"not null"`
	Price      uint `gorm:"not null"`
}
