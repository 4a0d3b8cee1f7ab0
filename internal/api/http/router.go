package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"reverse-chess/internal/api/ws"
	"reverse-chess/internal/logging"
	"reverse-chess/internal/room"
)

func NewRouter(rm *room.Manager, hub *ws.Hub, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logging.Middleware(log))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	// WebSocket for live room updates
	r.GET("/ws", hub.HandleWS)

	r.POST("/rooms", CreateRoomHandler(rm))

	rooms := r.Group("/rooms/:code")
	rooms.GET("", GetRoomHandler(rm))
	rooms.POST("/place", PlaceHandler(rm))
	rooms.POST("/undo", UndoHandler(rm))
	rooms.POST("/new-game", NewGameHandler(rm))
	rooms.POST("/reset", ResetHandler(rm))

	return r
}
