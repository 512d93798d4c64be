package services

import (
	"RestaurantBackend/models"
	"gorm.io/gorm"
)

// 將使用者加入群組，重複加入同一群組不會產生重複資料，
// 也不視為錯誤。只有Manager可呼叫，由呼叫端把關
func AddUserToGroup(db *gorm.DB, groupName string, username string) (*models.User, error) {
	var group models.Group
	err := db.Where("name = ?", groupName).First(&group).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	var user models.User
	err = db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	err = db.Model(&group).Association("Users").Append(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// 將使用者移出群組，對象不在群組內時也回傳成功
func RemoveUserFromGroup(db *gorm.DB, groupName string, userID uint) (*models.User, error) {
	var group models.Group
	err := db.Where("name = ?", groupName).First(&group).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	var user models.User
	err = db.First(&user, userID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	err = db.Model(&group).Association("Users").Delete(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// 查詢群組成員，任何已登入的使用者皆可查詢
func ListGroupMembers(db *gorm.DB, groupName string) ([]models.User, error) {
	var group models.Group
	err := db.Preload("Users").Where("name = ?", groupName).First(&group).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return group.Users, nil
}
