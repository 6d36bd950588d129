package routes

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/btmxh/dersflix/internal/auth"
	"github.com/btmxh/dersflix/internal/errs"
	"github.com/btmxh/dersflix/internal/services"
	"github.com/gin-gonic/gin"
	"golang.org/x/net/websocket"
)

var errAnonymousSocket = errors.New("You must be logged in to receive live updates.")

func WebSocketRouter(g *gin.RouterGroup) {
	g.GET("", func(c *gin.Context) {
		if !auth.IsLoggedIn(c) {
			errs.NewGinErrorHandler(c, "WebSocket error").PublicError(http.StatusUnauthorized, errAnonymousSocket)
			return
		}

		username := auth.GetUsername(c)
		websocket.Handler(func(conn *websocket.Conn) {
			defer conn.Close()

			socketId := services.GetManager().Add(conn, username)
			defer services.GetManager().Remove(username, socketId)

			for {
				var msg services.WebSocketMsg
				err := websocket.JSON.Receive(conn, &msg)
				if err != nil {
					if err != io.EOF {
						slog.Info("WebSocket connection closed or error", "err", err)
					}
					break
				}

				slog.Debug("Received from WebSocket", "username", username, "msg", msg)
			}
		}).ServeHTTP(c.Writer, c.Request)
	})
}
