package handlers

import (
	"RestaurantBackend/services"
	"errors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"net/http"
	"strconv"
)

// 查詢群組成員，任何已登入的使用者皆可查詢
func GetGroupMembersHandler(c *gin.Context, db *gorm.DB, groupName string) {
	users, err := services.ListGroupMembers(db, groupName)
	if err != nil {
		if errors.Is(err, services.ErrGroupNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "查詢群組成員失敗",
			"error":   err.Error(),
		})
		return
	}

	var userList []gin.H
	for _, user := range users {
		userList = append(userList, gin.H{
			"Id":       user.ID,
			"Username": user.Username,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "成功查詢群組成員",
		"userList": userList,
	})
}

// 將使用者加入群組，僅限Manager(由路由中間件把關)。
// 重複加入同一群組回傳成功，不視為錯誤
func AddGroupMemberHandler(c *gin.Context, db *gorm.DB, groupName string) {
	var memberReq struct {
		Username string `json:"username"`
	}
	err := c.ShouldBindJSON(&memberReq)
	if err != nil || memberReq.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "username為必填欄位",
		})
		return
	}

	user, err := services.AddUserToGroup(db, groupName, memberReq.Username)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": err.Error(),
			})
			return
		}
		if errors.Is(err, services.ErrGroupNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "加入群組失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "成功將使用者加入群組",
		"Username": user.Username,
		"Group":    groupName,
	})
}

// 將使用者移出群組，僅限Manager(由路由中間件把關)。
// 對象不在群組內時也回傳成功
func RemoveGroupMemberHandler(c *gin.Context, db *gorm.DB, groupName string) {
	userID, err := strconv.Atoi(c.Param("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "使用者ID輸入錯誤",
			"error":   err.Error(),
		})
		return
	}

	user, err := services.RemoveUserFromGroup(db, groupName, uint(userID))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": err.Error(),
			})
			return
		}
		if errors.Is(err, services.ErrGroupNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "移出群組失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "成功將使用者移出群組",
		"Username": user.Username,
		"Group":    groupName,
	})
}
