package listeners

import (
	"encoding/json"

	"github.com/shashiranjanraj/sokoni/pkg/ws"
)

// HubPusher adapts the websocket hub to the notification push channel.
type HubPusher struct {
	Hub *ws.Hub
}

// Push implements notification.Pusher. Delivery to offline users is a
// silent no-op.
func (p *HubPusher) Push(userID uint, title, body string) error {
	msg, err := json.Marshal(map[string]string{
		"type":  "notification",
		"title": title,
		"body":  body,
	})
	if err != nil {
		return err
	}
	p.Hub.SendTo(userID, msg)
	return nil
}
