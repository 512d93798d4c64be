package services

import (
	"RestaurantBackend/models"
	"errors"
	"testing"
)

func TestParseOrderPatch(t *testing.T) {
	patch, err := ParseOrderPatch([]byte(`{"status":"delivered","delivery_crew":3,"total":99}`))
	if err != nil {
		t.Fatalf("ParseOrderPatch: %v", err)
	}
	if patch.Status == nil || *patch.Status != "delivered" {
		t.Errorf("Status = %v, want delivered", patch.Status)
	}
	if patch.DeliveryCrew == nil || *patch.DeliveryCrew != 3 {
		t.Errorf("DeliveryCrew = %v, want 3", patch.DeliveryCrew)
	}
	if len(patch.Unknown) != 1 || patch.Unknown[0] != "total" {
		t.Errorf("Unknown = %v, want [total]", patch.Unknown)
	}

	//空白請求也合法
	patch, err = ParseOrderPatch(nil)
	if err != nil {
		t.Fatalf("空白請求ParseOrderPatch: %v", err)
	}
	if patch.Status != nil || patch.DeliveryCrew != nil || len(patch.Unknown) != 0 {
		t.Errorf("空白請求應為空patch: %+v", patch)
	}
}

func TestCanViewOrder(t *testing.T) {
	order := &models.Order{UserID: 1}

	tests := []struct {
		name        string
		roles       Roles
		requesterID uint
		want        bool
	}{
		{"擁有者", Roles{}, 1, true},
		{"Manager", Roles{Manager: true}, 2, true},
		{"其他顧客", Roles{}, 2, false},
		{"非擁有者的外送員", Roles{DeliveryCrew: true}, 2, false},
		{"身為擁有者的外送員", Roles{DeliveryCrew: true}, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanViewOrder(tt.roles, tt.requesterID, order)
			if got != tt.want {
				t.Errorf("CanViewOrder = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateOrderPatch(t *testing.T) {
	db := newTestDB(t)
	crew := createTestUser(t, db, "crew")
	addToGroup(t, db, "crew", models.GroupDeliveryCrew)
	customer := createTestUser(t, db, "dave")

	status := StatusDelivered
	badStatus := "shipped"

	tests := []struct {
		name    string
		roles   Roles
		patch   *OrderPatch
		wantErr error
	}{
		{"外送員只改status", Roles{DeliveryCrew: true}, &OrderPatch{Status: &status}, nil},
		{"外送員空白請求", Roles{DeliveryCrew: true}, &OrderPatch{}, nil},
		{"外送員夾帶delivery_crew", Roles{DeliveryCrew: true}, &OrderPatch{Status: &status, DeliveryCrew: &crew.ID}, ErrPatchForbidden},
		{"外送員夾帶其他欄位", Roles{DeliveryCrew: true}, &OrderPatch{Unknown: []string{"total"}}, ErrPatchForbidden},
		{"Manager指派外送員", Roles{Manager: true}, &OrderPatch{DeliveryCrew: &crew.ID}, nil},
		{"Manager指派非外送員", Roles{Manager: true}, &OrderPatch{DeliveryCrew: &customer.ID}, ErrNotDeliveryCrew},
		{"Manager指派不存在的使用者", Roles{Manager: true}, &OrderPatch{DeliveryCrew: uintPtr(9999)}, ErrUserNotFound},
		{"顧客指派外送員", Roles{}, &OrderPatch{DeliveryCrew: &crew.ID}, ErrPatchForbidden},
		{"顧客修改唯讀欄位", Roles{}, &OrderPatch{Unknown: []string{"total"}}, ErrUnknownPatchField},
		{"不合法的狀態值", Roles{Manager: true}, &OrderPatch{Status: &badStatus}, ErrInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOrderPatch(db, tt.roles, tt.patch)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateOrderPatch error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyOrderPatch(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")
	crew := createTestUser(t, db, "crew")
	addToGroup(t, db, "crew", models.GroupDeliveryCrew)
	menuItem := createTestMenuItem(t, db, "Pasta", 1000)

	if _, err := AddCartLine(db, user.ID, menuItem.ID, 1); err != nil {
		t.Fatalf("AddCartLine: %v", err)
	}
	order, err := PlaceOrder(db, user.ID)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	status := StatusOutForDelivery
	patch := &OrderPatch{Status: &status, DeliveryCrew: &crew.ID}
	if err := ValidateOrderPatch(db, Roles{Manager: true}, patch); err != nil {
		t.Fatalf("ValidateOrderPatch: %v", err)
	}
	if err := ApplyOrderPatch(db, order, patch); err != nil {
		t.Fatalf("ApplyOrderPatch: %v", err)
	}

	reloaded, err := GetOrder(db, order.ID)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if reloaded.Status != StatusOutForDelivery {
		t.Errorf("Status = %q, want %q", reloaded.Status, StatusOutForDelivery)
	}
	if reloaded.DeliveryCrewID == nil || *reloaded.DeliveryCrewID != crew.ID {
		t.Errorf("DeliveryCrewID = %v, want %d", reloaded.DeliveryCrewID, crew.ID)
	}
	//total與user不受更新影響
	if reloaded.Total != 1000 || reloaded.UserID != user.ID {
		t.Errorf("唯讀欄位被修改: Total=%d UserID=%d", reloaded.Total, reloaded.UserID)
	}
}

func uintPtr(v uint) *uint {
	return &v
}
