package services

import (
	"RestaurantBackend/models"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// 訂單更新請求，保留原始JSON鍵名以便依角色限制可修改的欄位。
// user、total、date永遠不可由客戶端修改
type OrderPatch struct {
	Status       *string
	DeliveryCrew *uint
	Unknown      []string
}

func ParseOrderPatch(body []byte) (*OrderPatch, error) {
	raw := make(map[string]json.RawMessage)
	if len(body) > 0 {
		if err := json.Unmarshal(body, &raw); err != nil {
			return nil, fmt.Errorf("解析請求資料失敗: %w", err)
		}
	}

	patch := &OrderPatch{}
	for key, value := range raw {
		switch key {
		case "status":
			var status string
			if err := json.Unmarshal(value, &status); err != nil {
				return nil, fmt.Errorf("解析status失敗: %w", err)
			}
			patch.Status = &status
		case "delivery_crew":
			var crewID uint
			if err := json.Unmarshal(value, &crewID); err != nil {
				return nil, fmt.Errorf("解析delivery_crew失敗: %w", err)
			}
			patch.DeliveryCrew = &crewID
		default:
			patch.Unknown = append(patch.Unknown, key)
		}
	}
	return patch, nil
}

// 訂單擁有者可查看自己的訂單，Manager可查看所有訂單；
// 外送員沒有獨立的查看權限，視同一般顧客
func CanViewOrder(roles Roles, requesterID uint, order *models.Order) bool {
	if roles.Manager {
		return true
	}
	return order.UserID == requesterID
}

// 依角色驗證訂單更新請求：
//   - 外送員只能修改status，夾帶其他欄位一律拒絕(空白請求允許)
//   - delivery_crew只有Manager能指派，且對象必須存在並屬於
//     Delivery Crew群組
//   - 其他欄位一律不可修改
func ValidateOrderPatch(db *gorm.DB, roles Roles, patch *OrderPatch) error {
	if roles.DeliveryCrew && !roles.Manager {
		if patch.DeliveryCrew != nil || len(patch.Unknown) > 0 {
			return ErrPatchForbidden
		}
	}

	if len(patch.Unknown) > 0 {
		return ErrUnknownPatchField
	}

	if patch.DeliveryCrew != nil {
		if !roles.Manager {
			return ErrPatchForbidden
		}

		crewRoles, err := crewRolesOf(db, *patch.DeliveryCrew)
		if err != nil {
			return err
		}
		if !crewRoles.DeliveryCrew {
			return ErrNotDeliveryCrew
		}
	}

	if patch.Status != nil && !ValidStatus(*patch.Status) {
		return ErrInvalidStatus
	}

	return nil
}

// 查詢被指派對象的角色，對象不存在時回傳ErrUserNotFound
func crewRolesOf(db *gorm.DB, userID uint) (Roles, error) {
	var user models.User
	err := db.Preload("Groups").First(&user, userID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return Roles{}, ErrUserNotFound
		}
		return Roles{}, err
	}

	var roles Roles
	for _, group := range user.Groups {
		switch group.Name {
		case models.GroupManager:
			roles.Manager = true
		case models.GroupDeliveryCrew:
			roles.DeliveryCrew = true
		}
	}
	return roles, nil
}

// 套用已通過驗證的更新欄位
func ApplyOrderPatch(db *gorm.DB, order *models.Order, patch *OrderPatch) error {
	updates := make(map[string]interface{})
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.DeliveryCrew != nil {
		updates["delivery_crew_id"] = *patch.DeliveryCrew
	}
	if len(updates) == 0 {
		return nil
	}

	err := db.Model(order).Updates(updates).Error
	if err != nil {
		return err
	}
	if patch.Status != nil {
		order.Status = *patch.Status
	}
	if patch.DeliveryCrew != nil {
		order.DeliveryCrewID = patch.DeliveryCrew
	}
	return nil
}
