package handlers

import (
	"RestaurantBackend/services"
	"errors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"io"
	"net/http"
	"strconv"
)

// 送出訂單：將購物車商品轉換為訂單並清空購物車
func SendOrderHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := c.Get("UserID")
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法取得使用者ID",
		})
		return
	}

	order, err := services.PlaceOrder(db, userID.(uint))
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "送出訂單失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "訂單已送出",
		"orderID": order.ID,
		"Total":   order.Total,
	})
}

// 查詢訂單列表，Manager可看到所有訂單，其他人只看到自己的訂單
func GetOrderListHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := c.Get("UserID")
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法取得使用者ID",
		})
		return
	}

	orders, err := services.ListOrders(db, userID.(uint), requestRoles(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "查詢訂單列表失敗",
			"error":   err.Error(),
		})
		return
	}

	var orderList []gin.H
	for _, order := range orders {
		orderList = append(orderList, gin.H{
			"OrderID":        order.ID,
			"UserID":         order.UserID,
			"DeliveryCrewID": order.DeliveryCrewID,
			"Status":         order.Status,
			"Total":          order.Total,
			"Date":           order.Date,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "成功查詢訂單列表",
		"orderList": orderList,
	})
}

// 查詢單一訂單，擁有者與Manager以外一律拒絕
func GetOrderDataHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := c.Get("UserID")
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法取得使用者ID",
		})
		return
	}

	orderID, err := strconv.Atoi(c.Param("orderID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "訂單ID輸入錯誤",
			"error":   err.Error(),
		})
		return
	}

	order, err := services.GetOrder(db, uint(orderID))
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "查詢訂單失敗",
			"error":   err.Error(),
		})
		return
	}

	if !services.CanViewOrder(requestRoles(c), userID.(uint), order) {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "沒有權限查看此訂單",
		})
		return
	}

	var orderItemsData []gin.H
	for _, orderItem := range order.OrderItems {
		orderItemsData = append(orderItemsData, gin.H{
			"MenuItemID": orderItem.MenuItemID,
			"Title":      orderItem.MenuItem.Title,
			"Quantity":   orderItem.Quantity,
			"UnitPrice":  orderItem.UnitPrice,
			"Price":      orderItem.Price,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "成功查詢訂單",
		"OrderID":        order.ID,
		"UserID":         order.UserID,
		"DeliveryCrewID": order.DeliveryCrewID,
		"Status":         order.Status,
		"Total":          order.Total,
		"Date":           order.Date,
		"orderItemsData": orderItemsData,
	})
}

// 更新訂單：外送員只能修改status；delivery_crew只有Manager能指派，
// 且對象必須屬於Delivery Crew群組
func UpdateOrderHandler(c *gin.Context, db *gorm.DB) {
	orderID, err := strconv.Atoi(c.Param("orderID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "訂單ID輸入錯誤",
			"error":   err.Error(),
		})
		return
	}

	order, err := services.GetOrder(db, uint(orderID))
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "查詢訂單失敗",
			"error":   err.Error(),
		})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "讀取請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	patch, err := services.ParseOrderPatch(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "解析請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	err = services.ValidateOrderPatch(db, requestRoles(c), patch)
	if err != nil {
		if errors.Is(err, services.ErrPatchForbidden) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": err.Error(),
			})
			return
		}
		if errors.Is(err, services.ErrUnknownPatchField) ||
			errors.Is(err, services.ErrInvalidStatus) ||
			errors.Is(err, services.ErrUserNotFound) ||
			errors.Is(err, services.ErrNotDeliveryCrew) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "驗證訂單更新失敗",
			"error":   err.Error(),
		})
		return
	}

	err = services.ApplyOrderPatch(db, order, patch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "更新訂單失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功更新訂單",
		"OrderID": order.ID,
		"Status":  order.Status,
	})
}

// 刪除訂單，僅限Manager(由路由中間件把關)
func DeleteOrderHandler(c *gin.Context, db *gorm.DB) {
	orderID, err := strconv.Atoi(c.Param("orderID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "訂單ID輸入錯誤",
			"error":   err.Error(),
		})
		return
	}

	err = services.DeleteOrder(db, uint(orderID))
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "刪除訂單失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功刪除訂單",
	})
}
