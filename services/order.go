package services

import (
	"RestaurantBackend/models"
	"sync"
	"time"

	"gorm.io/gorm"
)

// 訂單狀態，狀態間的轉換沒有順序限制
const (
	StatusPending        = "pending"
	StatusOutForDelivery = "out_for_delivery"
	StatusDelivered      = "delivered"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusOutForDelivery, StatusDelivered:
		return true
	}
	return false
}

// 每個使用者一把鎖，序列化同一使用者的併發下單，
// 避免同一份購物車被結帳兩次
var (
	userLocksMu sync.Mutex
	userLocks   = make(map[uint]*sync.Mutex)
)

func lockForUser(userID uint) *sync.Mutex {
	userLocksMu.Lock()
	defer userLocksMu.Unlock()
	lock, ok := userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		userLocks[userID] = lock
	}
	return lock
}

// 將購物車轉換為訂單：在同一事務內建立訂單、複製購物車商品
// 為訂單商品快照、累計總額並刪除購物車商品。
// 購物車為空時不建立任何訂單
func PlaceOrder(db *gorm.DB, userID uint) (*models.Order, error) {
	lock := lockForUser(userID)
	lock.Lock()
	defer lock.Unlock()

	tx := db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var cartItems []models.CartItem
	err := tx.Where("user_id = ?", userID).Find(&cartItems).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if len(cartItems) == 0 {
		tx.Rollback()
		return nil, ErrEmptyCart
	}

	order := models.Order{
		UserID: userID,
		Status: StatusPending,
		Total:  0,
		Date:   time.Now(),
	}
	err = tx.Create(&order).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	total := uint(0)
	consumedIDs := make([]uint, 0, len(cartItems))
	for _, cartItem := range cartItems {
		orderItem := models.OrderItem{
			OrderID:    order.ID,
			MenuItemID: cartItem.MenuItemID,
			Quantity:   cartItem.Quantity,
			UnitPrice:  cartItem.UnitPrice,
			Price:      cartItem.Price,
		}
		err = tx.Create(&orderItem).Error
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		total += cartItem.Price
		consumedIDs = append(consumedIDs, cartItem.ID)
	}

	//只刪除已轉換為訂單的購物車商品，事務期間新加入的商品保留
	err = tx.Where("id IN ?", consumedIDs).Delete(&models.CartItem{}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	order.Total = total
	err = tx.Model(&order).Update("total", total).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	return &order, nil
}

// 查詢訂單列表，Manager可看到所有訂單，其他人只看到自己的訂單
// (外送員沒有「指派給我的訂單」檢視，與原行為一致)
func ListOrders(db *gorm.DB, requesterID uint, roles Roles) ([]models.Order, error) {
	var orders []models.Order
	query := db.Preload("OrderItems")
	if !roles.Manager {
		query = query.Where("user_id = ?", requesterID)
	}
	err := query.Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func GetOrder(db *gorm.DB, orderID uint) (*models.Order, error) {
	var order models.Order
	err := db.
		Preload("OrderItems").
		Preload("OrderItems.MenuItem").
		First(&order, orderID).
		Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// 刪除訂單及其訂單商品
func DeleteOrder(db *gorm.DB, orderID uint) error {
	var order models.Order
	err := db.First(&order, orderID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrOrderNotFound
		}
		return err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	err = tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error
	if err != nil {
		tx.Rollback()
		return err
	}
	err = tx.Delete(&order).Error
	if err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}
