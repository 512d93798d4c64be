package handlers

import (
	"RestaurantBackend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"net/http"
)

// 查詢分類列表
func GetCategoryListHandler(c *gin.Context, db *gorm.DB) {
	var categories []struct {
		Id    uint
		Slug  string
		Title string
	}
	err := db.
		Model(&models.Category{}).
		Select("Id", "Slug", "Title").
		Find(&categories).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法讀取分類列表",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "成功讀取分類列表",
		"categories": categories,
	})
}

// 新增分類，僅限Manager
func CreateCategoryHandler(c *gin.Context, db *gorm.DB) {
	var newCategory struct {
		Slug  string `json:"slug" binding:"required"`
		Title string `json:"title" binding:"required"`
	}
	err := c.ShouldBindJSON(&newCategory)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	category := models.Category{
		Slug:  newCategory.Slug,
		Title: newCategory.Title,
	}
	err = db.Create(&category).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "新增分類失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "成功新增分類",
		"category": category,
	})
}
