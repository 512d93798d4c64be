package handlers

import (
	"RestaurantBackend/services"
	"errors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"net/http"
)

// 從請求內容取得已解析的角色，未登入時為一般顧客(無角色)
func requestRoles(c *gin.Context) services.Roles {
	value, exists := c.Get("Roles")
	if !exists {
		return services.Roles{}
	}
	return value.(services.Roles)
}

// 查詢自己的購物車商品，Manager與Delivery Crew沒有購物車
func GetCartHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := c.Get("UserID")
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法取得使用者ID",
		})
		return
	}

	roles := requestRoles(c)
	if roles.Manager || roles.DeliveryCrew {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "員工帳號沒有購物車",
		})
		return
	}

	cartItems, err := services.ListCartLines(db, userID.(uint))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "查詢購物車失敗",
			"error":   err.Error(),
		})
		return
	}

	var cartItemsData []gin.H
	for _, cartItem := range cartItems {
		cartItemsData = append(cartItemsData, gin.H{
			"MenuItemID": cartItem.MenuItemID,
			"Title":      cartItem.MenuItem.Title,
			"Quantity":   cartItem.Quantity,
			"UnitPrice":  cartItem.UnitPrice,
			"Price":      cartItem.Price,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "成功查詢購物車",
		"cartItemsData": cartItemsData,
	})
}

// 新增商品至購物車
func AddToCartHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := c.Get("UserID")
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法取得使用者ID",
		})
		return
	}

	var cartItemReq struct {
		MenuItemID uint `json:"menuItemID" binding:"required"`
		Quantity   int  `json:"quantity" binding:"required"`
	}
	err := c.ShouldBindJSON(&cartItemReq)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	if cartItemReq.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "商品數量必須大於0",
		})
		return
	}

	cartItem, err := services.AddCartLine(db, userID.(uint), cartItemReq.MenuItemID, uint(cartItemReq.Quantity))
	if err != nil {
		if errors.Is(err, services.ErrMenuItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": err.Error(),
			})
			return
		}
		if errors.Is(err, services.ErrInvalidQuantity) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "新增商品至購物車失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "成功新增商品至購物車",
		"menuItemID": cartItem.MenuItemID,
		"Quantity":   cartItem.Quantity,
		"Price":      cartItem.Price,
	})
}

// 清空購物車，購物車為空時也回傳成功
func ClearCartHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := c.Get("UserID")
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法取得使用者ID",
		})
		return
	}

	err := services.ClearCart(db, userID.(uint))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "清空購物車失敗",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功清空購物車",
	})
}
