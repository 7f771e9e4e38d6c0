package controllers

import (
	"log"
	"net/http"
	"time"

	"labchat/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSController upgrades the request and hands the connection to the hub. The
// credential travels in the token query parameter; a connection that fails to
// register is closed with a policy-violation close frame and leaves no state
// behind.
func WSController(hub *ws.Hub) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
		if err != nil {
			log.Println("Failed to upgrade connection:", err)
			return
		}

		client := ws.NewClient(hub, conn)
		if _, err := hub.Register(client, ctx.Query("token")); err != nil {
			log.Printf("Rejecting connection %s: %v", client.ID, err)
			deadline := time.Now().Add(time.Second)
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "invalid token"), deadline)
			conn.Close()
			return
		}
		client.Start()
	}
}
