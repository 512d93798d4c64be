package models

import (
	"gorm.io/gorm"
	"time"
)

type Order struct {
	gorm.Model
	UserID         uint `gorm:"not null;index"`
	User           User
	DeliveryCrewID *uint
	DeliveryCrew   *User `gorm:"foreignKey:DeliveryCrewID"`
	OrderItems     []OrderItem
	Status         string `gorm:"not null"`
	Total          uint   `gorm:"not null"`
	Date           time.Time
}
