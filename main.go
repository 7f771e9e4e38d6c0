package main

import (
	"log"

	"labchat/config"
	"labchat/models"
	"labchat/routes"
	"labchat/services"
	"labchat/ws"
)

func main() {
	config.LoadEnv()
	// 初始化数据库
	config.InitDB()
	// 自动迁移
	models.Migrate()

	identity := services.NewIdentity(config.DB)
	hub := ws.NewHub(identity, identity, services.NewMessageStore(config.DB))

	// 注册路由
	r := routes.RegisterRoutes(hub)

	// 启动服务
	addr := config.Getenv("LISTEN_ADDR", ":8082")
	if err := r.Run(addr); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
