package routes

import (
	"labchat/controllers"
	"labchat/middlewares"
	"labchat/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(hub *ws.Hub) *gin.Engine {

	r := gin.Default()
	// 配置跨域中间件
	corsConfig := cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}

	r.Use(cors.New(corsConfig))
	r.GET("/ws", controllers.WSController(hub))
	r.Static("/uploads", "./uploads")

	protected := r.Group("/api")

	protected.POST("/register", controllers.Register) // 绑定注册接口
	protected.POST("/login", controllers.Login)       // 绑定登录接口

	{
		protected.Use(middlewares.TokenAuthMiddleware())
		protected.GET("/userinfo", controllers.GetUserInfo)
		protected.GET("/users", controllers.ListUsers)
		protected.GET("/messages/:room_id", controllers.GetRoomMessages)
		protected.POST("/avatar", controllers.UploadAvatar)
	}

	return r
}
