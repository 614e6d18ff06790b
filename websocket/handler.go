package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/IkingariSolorzano/gymcredit-be/middleware"
	"github.com/IkingariSolorzano/gymcredit-be/models"
	"github.com/IkingariSolorzano/gymcredit-be/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebSocket upgrades an authenticated dashboard request. Partners only
// receive events for their own gyms.
func HandleWebSocket(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := middleware.CurrentPrincipal(c)
		if !ok {
			response.Unauthorized(c)
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			middleware.LoggerFrom(c).WithError(err).Warn("Error upgrading websocket connection")
			return
		}

		client := &Client{
			hub:    hub,
			conn:   conn,
			send:   make(chan []byte, sendBuffer),
			userID: p.UserID,
		}
		if p.Role == models.RoleAdmin {
			client.partnerID = p.UserID
		}
		if !hub.Register(client) {
			conn.Close()
			return
		}

		middleware.LoggerFrom(c).WithField("userId", p.UserID).Info("Websocket client connected")

		go client.writePump()
		go client.readPump()
	}
}
