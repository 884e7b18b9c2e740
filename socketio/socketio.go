package socketio

import (
	"context"
	"strconv"
	"time"

	"skillswap-service/controller"
	"skillswap-service/model"
	"skillswap-service/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/redis/go-redis/v9"
	eiolog "github.com/zishang520/engine.io/v2/log"
	"github.com/zishang520/socket.io-go-redis/adapter"
	r_type "github.com/zishang520/socket.io-go-redis/types"
	"github.com/zishang520/socket.io/v2/socket"
)

const NotificationEvent = "notification"

// Init mounts a socket.io server on app. With a redis client the rooms are
// shared across instances through the redis adapter.
func Init(app *fiber.App, redisClient *redis.Client, debug bool) *socket.Server {
	eiolog.DEBUG = debug

	options := socket.DefaultServerOptions()
	options.SetServeClient(true)
	options.SetAllowEIO3(true)
	options.SetPingInterval(25 * time.Second)
	options.SetPingTimeout(20 * time.Second)
	options.SetMaxHttpBufferSize(1000000)
	options.SetConnectTimeout(45 * time.Second)
	if redisClient != nil {
		options.SetAdapter(&adapter.RedisAdapterBuilder{
			Redis: r_type.NewRedisClient(context.Background(), redisClient),
			Opts:  &adapter.RedisAdapterOptions{},
		})
	}

	server := socket.NewServer(nil, nil)
	server.Use(authenticate)

	app.Get("/socket.io/", adaptor.HTTPHandler(server.ServeHandler(options)))
	app.Post("/socket.io/", adaptor.HTTPHandler(server.ServeHandler(options)))

	return server
}

// authenticate joins a socket to its user's room when it presents a fully
// authenticated access token. Anonymous sockets stay connected but receive
// nothing.
func authenticate(client *socket.Socket, next func(*socket.ExtendedError)) {
	token, ok := client.Conn().Request().Query().Get("token")
	if ok {
		claims, err := utils.CheckAndExtractTokenMetadata(token, utils.AccessKey)
		if err == nil && !claims.Otp {
			client.Join(Room(claims.UserID))
			client.SetData(claims)
		}
	}

	next(nil)
}

func Room(userID uint) socket.Room {
	return socket.Room(strconv.FormatUint(uint64(userID), 10))
}

// Caller returns the user a socket authenticated as.
func Caller(client *socket.Socket) (uint, bool) {
	claims, ok := client.Data().(*utils.TokenMetadata)
	if !ok || claims == nil {
		return 0, false
	}
	return claims.UserID, true
}

// Notifier pushes stored notifications to the recipient's room.
type Notifier struct {
	server *socket.Server
}

func NewNotifier(server *socket.Server) *Notifier {
	return &Notifier{server: server}
}

func (n *Notifier) Push(_ context.Context, notification *model.Notification) error {
	n.server.To(Room(notification.UserID)).Emit(NotificationEvent, controller.NewNotificationView(notification))
	return nil
}
