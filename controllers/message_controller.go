package controllers

import (
	"log"
	"net/http"

	"labchat/config"
	"labchat/services"
	"labchat/utils"

	"github.com/gin-gonic/gin"
)

// 获取房间的消息列表
func GetRoomMessages(c *gin.Context) {
	roomID := c.Param("room_id")
	if roomID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "room_id is required"})
		return
	}
	if currentUser(c) == nil {
		return
	}

	store := services.NewMessageStore(config.DB)
	messages, err := store.ListRoomMessages(c.Request.Context(), roomID)
	if err != nil {
		log.Println("Error fetching messages:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}
	utils.RespondSuccess(c, messages, nil)
}
