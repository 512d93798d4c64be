package handlers

import (
	"RestaurantBackend/models"
	"encoding/json"
	"fmt"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"net/http"
	"strconv"
)

func min(x, y int) int {
	if x < y {
		return x
	}
	return y
}

// 更新Redis內的菜單品項快取
func UpdateMenuItemToRedis(c *gin.Context, rdb *redis.Client, menuItem *models.MenuItem) (error, string) {
	menuItemJSON, err := json.Marshal(menuItem)
	if err != nil {
		return err, "無法序列化菜單品項資料"
	}

	score := strconv.Itoa(int(menuItem.ID))
	err = rdb.ZRemRangeByScore(c, "menu_items", score, score).Err()
	if err != nil {
		return err, "無法將菜單品項從Redis刪除"
	}

	err = rdb.ZAdd(c, "menu_items", redis.Z{
		Score:  float64(menuItem.ID),
		Member: menuItemJSON,
	}).Err()
	if err != nil {
		return err, "無法將菜單品項加入Redis"
	}

	return nil, ""
}

// 查詢菜單品項列表，可用?category=過濾分類
func GetMenuItemListHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client) {
	limit := c.DefaultQuery("limit", "10")
	limitInt, err := strconv.Atoi(limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "查詢數量輸入錯誤",
			"error":   err.Error(),
		})
		return
	}
	//限制最高查詢數量為50
	if limitInt > 50 {
		limitInt = 50
	}

	offset := c.DefaultQuery("offset", "0")
	offsetInt, err := strconv.Atoi(offset)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "offset輸入錯誤",
			"error":   err.Error(),
		})
		return
	}

	//嘗試從Redis讀取菜單列表，如失敗則從資料庫讀取並儲存至Redis
	redisMenuItems, err := rdb.ZRange(c, "menu_items", 0, -1).Result()
	if err != nil || rdb.ZCard(c, "menu_items").Val() == 0 {
		var menuItems []models.MenuItem
		err = db.Preload("Category").Find(&menuItems).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "無法讀取菜單列表",
				"error":   err.Error(),
			})
			return
		}

		rdb.Del(c, "menu_items")

		for _, menuItem := range menuItems {
			menuItemJSON, err := json.Marshal(menuItem)
			if err != nil {
				fmt.Printf("無法序列化菜單品項資料: %v\n", err)
				continue
			}

			err = rdb.ZAdd(c, "menu_items", redis.Z{
				Score:  float64(menuItem.ID),
				Member: menuItemJSON,
			}).Err()
			if err != nil {
				fmt.Printf("無法將菜單品項加入Redis: %v\n", err)
				continue
			}
		}

		//再次嘗試從Redis讀取菜單列表
		redisMenuItems, err = rdb.ZRange(c, "menu_items", 0, -1).Result()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "無法從Redis讀取菜單列表",
				"error":   err.Error(),
			})
			return
		}
	}

	categorySlug := c.Query("category")

	var menuItemsData []gin.H
	for _, redisMenuItem := range redisMenuItems {
		var menuItemUnmarshal models.MenuItem
		err = json.Unmarshal([]byte(redisMenuItem), &menuItemUnmarshal)
		if err != nil {
			fmt.Printf("無法反序列化菜單品項資料: %v\n", err)
			continue
		}

		//依分類過濾
		if categorySlug != "" && menuItemUnmarshal.Category.Slug != categorySlug {
			continue
		}

		menuItemsData = append(menuItemsData, gin.H{
			"ID":       menuItemUnmarshal.ID,
			"Title":    menuItemUnmarshal.Title,
			"Price":    menuItemUnmarshal.Price,
			"Featured": menuItemUnmarshal.Featured,
			"Category": menuItemUnmarshal.Category.Title,
		})
	}

	totalCount := len(menuItemsData)

	//預防offset跟limit超出搜尋結果切片
	if offsetInt > 0 && offsetInt >= totalCount {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":    "offset超過菜單品項數量",
			"totalCount": totalCount,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "成功讀取菜單列表",
		"menuItems":  menuItemsData[offsetInt:min(offsetInt+limitInt, totalCount)],
		"totalCount": totalCount,
	})
}

// 查詢單一菜單品項
func GetMenuItemDataHandler(c *gin.Context, db *gorm.DB) {
	menuItemID := c.Param("menuItemID")

	var menuItem models.MenuItem
	err := db.Preload("Category").First(&menuItem, menuItemID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "查無此菜單品項",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "查詢菜單品項失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功查詢菜單品項",
		"menuItem": gin.H{
			"ID":       menuItem.ID,
			"Title":    menuItem.Title,
			"Price":    menuItem.Price,
			"Featured": menuItem.Featured,
			"Category": menuItem.Category.Title,
		},
	})
}

// 新增菜單品項，僅限Manager
func CreateMenuItemHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client) {
	var newMenuItem struct {
		Title      string `json:"title" binding:"required"`
		Price      uint   `json:"price" binding:"required"`
		Featured   bool   `json:"featured"`
		CategoryID uint   `json:"categoryID" binding:"required"`
	}
	err := c.ShouldBindJSON(&newMenuItem)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	//檢查分類是否存在
	var category models.Category
	err = db.First(&category, newMenuItem.CategoryID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "查無此分類",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "查詢分類失敗",
			"error":   err.Error(),
		})
		return
	}

	menuItem := models.MenuItem{
		Title:      newMenuItem.Title,
		Price:      newMenuItem.Price,
		Featured:   newMenuItem.Featured,
		CategoryID: category.ID,
		Category:   category,
	}

	tx := db.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "開啟資料庫事務失敗",
			"error":   tx.Error.Error(),
		})
		return
	}

	err = tx.Create(&menuItem).Error
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "新增菜單品項失敗",
			"error":   err.Error(),
		})
		return
	}

	err, msg := UpdateMenuItemToRedis(c, rdb, &menuItem)
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": msg,
			"error":   err.Error(),
		})
		return
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "提交事務失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "成功新增菜單品項",
		"menuItem": menuItem,
	})
}

// 修改菜單品項，僅限Manager。調價不影響既有的購物車與訂單快照
func UpdateMenuItemHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client) {
	menuItemID := c.Param("menuItemID")

	var menuItemReq struct {
		Title      *string `json:"title"`
		Price      *uint   `json:"price"`
		Featured   *bool   `json:"featured"`
		CategoryID *uint   `json:"categoryID"`
	}
	err := c.ShouldBindJSON(&menuItemReq)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	var menuItem models.MenuItem
	err = db.First(&menuItem, menuItemID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "查無此菜單品項",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "查詢菜單品項失敗",
			"error":   err.Error(),
		})
		return
	}

	if menuItemReq.Title != nil {
		menuItem.Title = *menuItemReq.Title
	}
	if menuItemReq.Price != nil {
		if *menuItemReq.Price == 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "價格必須大於0",
			})
			return
		}
		menuItem.Price = *menuItemReq.Price
	}
	if menuItemReq.Featured != nil {
		menuItem.Featured = *menuItemReq.Featured
	}
	if menuItemReq.CategoryID != nil {
		var category models.Category
		err = db.First(&category, *menuItemReq.CategoryID).Error
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "查無此分類",
			})
			return
		}
		menuItem.CategoryID = category.ID
		menuItem.Category = category
	}

	tx := db.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "開啟資料庫事務失敗",
			"error":   tx.Error.Error(),
		})
		return
	}

	err = tx.Save(&menuItem).Error
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "修改菜單品項失敗",
			"error":   err.Error(),
		})
		return
	}

	err, msg := UpdateMenuItemToRedis(c, rdb, &menuItem)
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": msg,
			"error":   err.Error(),
		})
		return
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "提交事務失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功修改菜單品項",
	})
}

// 刪除菜單品項，僅限Manager。已存在的訂單快照不受影響
func DeleteMenuItemHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client) {
	menuItemID := c.Param("menuItemID")

	var menuItem models.MenuItem
	err := db.First(&menuItem, menuItemID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "查無此菜單品項",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "查詢菜單品項失敗",
			"error":   err.Error(),
		})
		return
	}

	tx := db.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "開啟資料庫事務失敗",
			"error":   tx.Error.Error(),
		})
		return
	}

	err = tx.Delete(&menuItem).Error
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "刪除菜單品項失敗",
			"error":   err.Error(),
		})
		return
	}

	score := strconv.Itoa(int(menuItem.ID))
	err = rdb.ZRemRangeByScore(c, "menu_items", score, score).Err()
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法將菜單品項從Redis刪除",
			"error":   err.Error(),
		})
		return
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "提交事務失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功刪除菜單品項",
	})
}
