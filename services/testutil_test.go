package services

import (
	"RestaurantBackend/config"
	"RestaurantBackend/models"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 測試用的記憶體資料庫，限制單一連線避免每個連線
// 各自擁有獨立的in-memory資料庫
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("開啟測試資料庫失敗: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("取得資料庫連線失敗: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.LoginToken{},
		&models.Category{},
		&models.MenuItem{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		t.Fatalf("建立資料表失敗: %v", err)
	}

	if err := config.SeedGroups(db); err != nil {
		t.Fatalf("建立群組失敗: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("建立測試使用者失敗: %v", err)
	}
	return &user
}

func createTestMenuItem(t *testing.T, db *gorm.DB, title string, price uint) *models.MenuItem {
	t.Helper()

	var category models.Category
	err := db.Where("slug = ?", "mains").
		FirstOrCreate(&category, models.Category{Slug: "mains", Title: "Mains"}).Error
	if err != nil {
		t.Fatalf("建立測試分類失敗: %v", err)
	}

	menuItem := models.MenuItem{
		Title:      title,
		Price:      price,
		CategoryID: category.ID,
	}
	if err := db.Create(&menuItem).Error; err != nil {
		t.Fatalf("建立測試菜單品項失敗: %v", err)
	}
	return &menuItem
}

func addToGroup(t *testing.T, db *gorm.DB, username string, groupName string) {
	t.Helper()

	if _, err := AddUserToGroup(db, groupName, username); err != nil {
		t.Fatalf("加入群組失敗: %v", err)
	}
}
