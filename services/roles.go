package services

import (
	"RestaurantBackend/models"
	"gorm.io/gorm"
)

// 使用者所屬的員工角色，兩者皆否即為一般顧客
type Roles struct {
	Manager      bool
	DeliveryCrew bool
}

func (r Roles) IsCustomer() bool {
	return !r.Manager && !r.DeliveryCrew
}

// 查詢使用者目前的群組，每次請求都重新查詢，
// 群組異動後不需重新登入即生效
func RolesOf(db *gorm.DB, userID uint) (Roles, error) {
	var user models.User
	err := db.Preload("Groups").First(&user, userID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			//查無使用者視同無任何角色，不視為錯誤
			return Roles{}, nil
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
