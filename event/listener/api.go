package listener

import (
	"log/slog"

	"skillswap-service/event"
)

// Api drains events consumed from the api queue until the channel closes.
// No action is handled here yet; events are logged.
func Api(events <-chan event.EventChannelData, log *slog.Logger) {
	for e := range events {
		log.Info("api event received", "id", e.ID, "action", e.Action, "bytes", len(e.Data))
	}
}
