package services

import (
	"RestaurantBackend/models"
	"gorm.io/gorm"
)

// 新增商品至購物車，單價以加入當下的菜單價格快照，
// 相同商品重複加入時不合併數量，維持多筆紀錄
func AddCartLine(db *gorm.DB, userID uint, menuItemID uint, quantity uint) (*models.CartItem, error) {
	if quantity == 0 {
		return nil, ErrInvalidQuantity
	}

	var menuItem models.MenuItem
	err := db.First(&menuItem, menuItemID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}

	cartItem := models.CartItem{
		UserID:     userID,
		MenuItemID: menuItem.ID,
		Quantity:   quantity,
		UnitPrice:  menuItem.Price,
		Price:      quantity * menuItem.Price,
	}
	err = db.Create(&cartItem).Error
	if err != nil {
		return nil, err
	}
	return &cartItem, nil
}

// 查詢使用者自己的購物車商品，Manager與Delivery Crew
// 沒有購物車，呼叫端須先以403拒絕
func ListCartLines(db *gorm.DB, userID uint) ([]models.CartItem, error) {
	var cartItems []models.CartItem
	err := db.
		Where("user_id = ?", userID).
		Preload("MenuItem").
		Find(&cartItems).
		Error
	if err != nil {
		return nil, err
	}
	return cartItems, nil
}

// 清空購物車，購物車為空時也回傳成功
func ClearCart(db *gorm.DB, userID uint) error {
	return db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
