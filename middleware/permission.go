package middleware

import (
	"RestaurantBackend/services"
	"github.com/gin-gonic/gin"
	"log"
	"net/http"
)

// 檢查是否有Manager權限，沒有則中止請求
func CheckManagerPermissionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("Roles")
		if !exists {
			log.Println("無法取得Roles")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "錯誤",
			})
			c.Abort()
			return
		}
		roles := value.(services.Roles)
		if !roles.Manager {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "沒有權限",
			})
			c.Abort()
			return
		}

		c.Next()
		return
	}
}
