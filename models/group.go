package models

import "gorm.io/gorm"

// 員工角色群組，不屬於任何群組的使用者為一般顧客
const (
	GroupManager      = "Manager"
	GroupDeliveryCrew = "Delivery Crew"
)

type Group struct {
	gorm.Model
	Name  string `gorm:"unique;not null"`
	Users []User `gorm:"many2many:user_groups;"`
}
