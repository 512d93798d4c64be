package services

import (
	"RestaurantBackend/models"
	"errors"
	"sync"
	"testing"
)

func TestPlaceOrderConvertsCart(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")
	menuItem := createTestMenuItem(t, db, "Pasta", 1000)

	if _, err := AddCartLine(db, user.ID, menuItem.ID, 2); err != nil {
		t.Fatalf("AddCartLine: %v", err)
	}

	order, err := PlaceOrder(db, user.ID)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	if order.Total != 2000 {
		t.Errorf("Total = %d, want 2000", order.Total)
	}
	if order.Status != StatusPending {
		t.Errorf("Status = %q, want %q", order.Status, StatusPending)
	}
	if order.Date.IsZero() {
		t.Error("Date未設定")
	}

	//訂單商品為購物車的快照
	var orderItems []models.OrderItem
	if err := db.Where("order_id = ?", order.ID).Find(&orderItems).Error; err != nil {
		t.Fatalf("查詢訂單商品失敗: %v", err)
	}
	if len(orderItems) != 1 {
		t.Fatalf("訂單商品筆數 = %d, want 1", len(orderItems))
	}
	if orderItems[0].UnitPrice != 1000 || orderItems[0].Quantity != 2 || orderItems[0].Price != 2000 {
		t.Errorf("訂單商品快照錯誤: %+v", orderItems[0])
	}

	//下單後購物車清空
	cartItems, err := ListCartLines(db, user.ID)
	if err != nil {
		t.Fatalf("ListCartLines: %v", err)
	}
	if len(cartItems) != 0 {
		t.Errorf("下單後購物車商品筆數 = %d, want 0", len(cartItems))
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")

	_, err := PlaceOrder(db, user.ID)
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("PlaceOrder error = %v, want %v", err, ErrEmptyCart)
	}

	//失敗時不建立任何訂單
	var count int64
	if err := db.Model(&models.Order{}).Count(&count).Error; err != nil {
		t.Fatalf("查詢訂單數量失敗: %v", err)
	}
	if count != 0 {
		t.Errorf("訂單數量 = %d, want 0", count)
	}
}

func TestPlaceOrderTotalImmutableAfterPriceChange(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")
	menuItem := createTestMenuItem(t, db, "Pasta", 1000)

	if _, err := AddCartLine(db, user.ID, menuItem.ID, 2); err != nil {
		t.Fatalf("AddCartLine: %v", err)
	}
	order, err := PlaceOrder(db, user.ID)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	//下單後調價，訂單總額與訂單商品不變
	if err := db.Model(menuItem).Update("price", 5).Error; err != nil {
		t.Fatalf("調價失敗: %v", err)
	}

	reloaded, err := GetOrder(db, order.ID)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if reloaded.Total != 2000 {
		t.Errorf("調價後Total = %d, want 2000", reloaded.Total)
	}
	if reloaded.OrderItems[0].UnitPrice != 1000 {
		t.Errorf("調價後訂單商品UnitPrice = %d, want 1000", reloaded.OrderItems[0].UnitPrice)
	}
}

// 同一使用者併發下單，同一份購物車只能轉換為一張訂單
func TestPlaceOrderConcurrent(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")
	menuItem := createTestMenuItem(t, db, "Pasta", 1000)

	if _, err := AddCartLine(db, user.ID, menuItem.ID, 1); err != nil {
		t.Fatalf("AddCartLine: %v", err)
	}

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := PlaceOrder(db, user.ID)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded, emptyCart := 0, 0
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrEmptyCart):
			emptyCart++
		default:
			t.Errorf("非預期的錯誤: %v", err)
		}
	}
	if succeeded != 1 || emptyCart != 1 {
		t.Errorf("成功 = %d, 空購物車 = %d, want 1和1", succeeded, emptyCart)
	}

	var orderCount int64
	if err := db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("查詢訂單數量失敗: %v", err)
	}
	if orderCount != 1 {
		t.Errorf("訂單數量 = %d, want 1", orderCount)
	}
}

func TestListOrdersVisibility(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	manager := createTestUser(t, db, "boss")
	addToGroup(t, db, "boss", models.GroupManager)
	menuItem := createTestMenuItem(t, db, "Pasta", 1000)

	for _, user := range []*models.User{alice, bob} {
		if _, err := AddCartLine(db, user.ID, menuItem.ID, 1); err != nil {
			t.Fatalf("AddCartLine: %v", err)
		}
		if _, err := PlaceOrder(db, user.ID); err != nil {
			t.Fatalf("PlaceOrder: %v", err)
		}
	}

	managerRoles, err := RolesOf(db, manager.ID)
	if err != nil {
		t.Fatalf("RolesOf: %v", err)
	}

	//Manager看到所有訂單
	orders, err := ListOrders(db, manager.ID, managerRoles)
	if err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if len(orders) != 2 {
		t.Errorf("Manager可見訂單數量 = %d, want 2", len(orders))
	}

	//一般顧客只看到自己的訂單
	orders, err = ListOrders(db, alice.ID, Roles{})
	if err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("alice可見訂單數量 = %d, want 1", len(orders))
	}
	if orders[0].UserID != alice.ID {
		t.Errorf("訂單UserID = %d, want %d", orders[0].UserID, alice.ID)
	}

	//外送員沒有獨立檢視，也只看到自己的訂單
	orders, err = ListOrders(db, bob.ID, Roles{DeliveryCrew: true})
	if err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if len(orders) != 1 {
		t.Errorf("外送員可見訂單數量 = %d, want 1", len(orders))
	}
}

func TestDeleteOrder(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")
	menuItem := createTestMenuItem(t, db, "Pasta", 1000)

	if _, err := AddCartLine(db, user.ID, menuItem.ID, 1); err != nil {
		t.Fatalf("AddCartLine: %v", err)
	}
	order, err := PlaceOrder(db, user.ID)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	if err := DeleteOrder(db, order.ID); err != nil {
		t.Fatalf("DeleteOrder: %v", err)
	}

	var itemCount int64
	if err := db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount).Error; err != nil {
		t.Fatalf("查詢訂單商品數量失敗: %v", err)
	}
	if itemCount != 0 {
		t.Errorf("刪除後訂單商品數量 = %d, want 0", itemCount)
	}

	if err := DeleteOrder(db, order.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("重複刪除error = %v, want %v", err, ErrOrderNotFound)
	}
}
