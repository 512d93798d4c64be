package routers

import (
	"RestaurantBackend/handlers"
	"RestaurantBackend/middleware"
	"RestaurantBackend/models"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"net/http"
)

func SetupRouters(db *gorm.DB, rdb *redis.Client) *gin.Engine {
	//建立Gin路由器
	router := gin.Default()
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Authorization")
		c.Next()
	})
	err := router.SetTrustedProxies(nil)
	if err != nil {
		return nil
	}

	router.OPTIONS("/*path", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	router.Use(middleware.RequestIDMiddleware())

	////無須登入，使用中間件解析身分
	router.Use(middleware.AuthMiddleware(db))
	{
		//註冊帳號
		router.POST("/api/v1/register", func(context *gin.Context) {
			handlers.RegisterHandler(context, db)
		})
		//登入帳號
		router.POST("/api/v1/login", func(context *gin.Context) {
			handlers.LoginHandler(context, db)
		})

		////需要登入，使用中間件檢查是否登入
		loginRequired := router.Group("/api/v1")
		loginRequired.Use(middleware.CheckLoginMiddleware())
		{
			//查詢菜單列表
			loginRequired.GET("/menu-items", func(context *gin.Context) {
				handlers.GetMenuItemListHandler(context, db, rdb)
			})
			//查詢單一菜單品項
			loginRequired.GET("/menu-items/:menuItemID", func(context *gin.Context) {
				handlers.GetMenuItemDataHandler(context, db)
			})
			//查詢分類列表
			loginRequired.GET("/categories", func(context *gin.Context) {
				handlers.GetCategoryListHandler(context, db)
			})

			//查詢購物車商品
			loginRequired.GET("/cart/menu-items", func(context *gin.Context) {
				handlers.GetCartHandler(context, db)
			})
			//新增商品至購物車
			loginRequired.POST("/cart/menu-items", func(context *gin.Context) {
				handlers.AddToCartHandler(context, db)
			})
			//清空購物車
			loginRequired.DELETE("/cart/menu-items", func(context *gin.Context) {
				handlers.ClearCartHandler(context, db)
			})

			//送出訂單並清空購物車
			loginRequired.POST("/orders", func(context *gin.Context) {
				handlers.SendOrderHandler(context, db)
			})
			//查詢訂單列表
			loginRequired.GET("/orders", func(context *gin.Context) {
				handlers.GetOrderListHandler(context, db)
			})
			//查詢訂單詳細資訊
			loginRequired.GET("/orders/:orderID", func(context *gin.Context) {
				handlers.GetOrderDataHandler(context, db)
			})
			//更新訂單狀態或指派外送員
			loginRequired.PATCH("/orders/:orderID", func(context *gin.Context) {
				handlers.UpdateOrderHandler(context, db)
			})

			//查詢群組成員(未限制角色，與原行為一致)
			loginRequired.GET("/groups/manager/users", func(context *gin.Context) {
				handlers.GetGroupMembersHandler(context, db, models.GroupManager)
			})
			loginRequired.GET("/groups/delivery-crew/users", func(context *gin.Context) {
				handlers.GetGroupMembersHandler(context, db, models.GroupDeliveryCrew)
			})

			//登出
			loginRequired.POST("/user/logout", func(context *gin.Context) {
				handlers.LogOutHandler(context, db)
			})
		}

		////需要Manager身分，使用中間件檢查是否登入及Manager權限
		managerRequired := router.Group("/api/v1")
		managerRequired.Use(middleware.CheckLoginMiddleware(), middleware.CheckManagerPermissionMiddleware())
		{
			//新增菜單品項
			managerRequired.POST("/menu-items", func(context *gin.Context) {
				handlers.CreateMenuItemHandler(context, db, rdb)
			})
			//修改菜單品項
			managerRequired.PUT("/menu-items/:menuItemID", func(context *gin.Context) {
				handlers.UpdateMenuItemHandler(context, db, rdb)
			})
			managerRequired.PATCH("/menu-items/:menuItemID", func(context *gin.Context) {
				handlers.UpdateMenuItemHandler(context, db, rdb)
			})
			//刪除菜單品項
			managerRequired.DELETE("/menu-items/:menuItemID", func(context *gin.Context) {
				handlers.DeleteMenuItemHandler(context, db, rdb)
			})
			//新增分類
			managerRequired.POST("/categories", func(context *gin.Context) {
				handlers.CreateCategoryHandler(context, db)
			})
			//刪除訂單
			managerRequired.DELETE("/orders/:orderID", func(context *gin.Context) {
				handlers.DeleteOrderHandler(context, db)
			})

			//管理Manager群組成員
			managerRequired.POST("/groups/manager/users", func(context *gin.Context) {
				handlers.AddGroupMemberHandler(context, db, models.GroupManager)
			})
			managerRequired.DELETE("/groups/manager/users/:userID", func(context *gin.Context) {
				handlers.RemoveGroupMemberHandler(context, db, models.GroupManager)
			})
			//管理Delivery Crew群組成員
			managerRequired.POST("/groups/delivery-crew/users", func(context *gin.Context) {
				handlers.AddGroupMemberHandler(context, db, models.GroupDeliveryCrew)
			})
			managerRequired.DELETE("/groups/delivery-crew/users/:userID", func(context *gin.Context) {
				handlers.RemoveGroupMemberHandler(context, db, models.GroupDeliveryCrew)
			})
		}
	}

	return router
}
