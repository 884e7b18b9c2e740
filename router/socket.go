package router

import (
	"context"
	"log/slog"
	"strconv"

	"skillswap-service/controller"
	"skillswap-service/service"
	"skillswap-service/socketio"

	"github.com/zishang520/socket.io/v2/socket"
)

type InitConnection struct {
	Unread        int64                         `json:"unread"`
	Notifications []controller.NotificationView `json:"notifications"`
}

func Socket(server *socket.Server, notifications *service.NotificationService, log *slog.Logger) {
	server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		client.On("init", func(args ...interface{}) {
			payload := InitConnection{Notifications: []controller.NotificationView{}}
			if userID, ok := socketio.Caller(client); ok {
				var err error
				payload, err = initConnection(context.Background(), notifications, userID)
				if err != nil {
					log.Error("socket init failed", "user_id", userID, "error", err)
				}
			}

			client.Emit("init", payload)
		})

		client.On("notification_read", func(args ...interface{}) {
			userID, ok := socketio.Caller(client)
			if !ok || len(args) == 0 {
				return
			}
			id, ok := parseID(args[0])
			if !ok {
				return
			}

			notification, err := notifications.MarkRead(context.Background(), userID, id)
			if err != nil {
				log.Warn("socket notification_read failed", "user_id", userID, "notification_id", id, "error", err)
				return
			}

			client.Emit("notification_read", controller.NewNotificationView(notification))
		})
	})
}

func initConnection(ctx context.Context, notifications *service.NotificationService, userID uint) (InitConnection, error) {
	payload := InitConnection{Notifications: []controller.NotificationView{}}

	unread, err := notifications.UnreadCount(ctx, userID)
	if err != nil {
		return payload, err
	}
	latest, err := notifications.Latest(ctx, userID, service.DefaultLatest)
	if err != nil {
		return payload, err
	}

	payload.Unread = unread
	payload.Notifications = controller.NotificationViews(latest)
	return payload, nil
}

// parseID accepts ids sent as JSON numbers or decimal strings.
func parseID(arg interface{}) (uint, bool) {
	switch v := arg.(type) {
	case float64:
		if v <= 0 || v != float64(uint(v)) {
			return 0, false
		}
		return uint(v), true
	case string:
		id, err := strconv.ParseUint(v, 10, 0)
		if err != nil || id == 0 {
			return 0, false
		}
		return uint(id), true
	default:
		return 0, false
	}
}
