package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/sokoni/app/repositories"
	"github.com/shashiranjanraj/sokoni/pkg/response"
	"github.com/shashiranjanraj/sokoni/pkg/ws"
)

// NotificationController serves the in-app notification feed and the
// websocket endpoint real-time pushes arrive on.
type NotificationController struct {
	repo *repositories.NotificationRepository
	hub  *ws.Hub
}

func NewNotificationController(repo *repositories.NotificationRepository, hub *ws.Hub) *NotificationController {
	return &NotificationController{repo: repo, hub: hub}
}

// Index returns a page of the user's notifications, newest first.
func (c *NotificationController) Index(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 20)

	items, total, err := c.repo.ByUser(actor(r).ID, page, limit)
	if err != nil {
		respondErr(w, err)
		return
	}

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}
	response.Paginated(w, items, response.Pagination{
		Page: page, Limit: limit, Total: total, TotalPages: totalPages,
	})
}

// UnreadCount returns how many notifications are unread.
func (c *NotificationController) UnreadCount(w http.ResponseWriter, r *http.Request) {
	n, err := c.repo.UnreadCount(actor(r).ID)
	if err != nil {
		respondErr(w, err)
		return
	}
	response.Success(w, map[string]int64{"unread": n})
}

// MarkRead stamps one notification as read.
func (c *NotificationController) MarkRead(w http.ResponseWriter, r *http.Request) {
	if err := c.repo.MarkRead(actor(r).ID, uintParam(r, "id")); err != nil {
		respondErr(w, err)
		return
	}
	response.Success(w, map[string]string{"message": "Marked read"})
}

// MarkAllRead stamps every unread notification as read.
func (c *NotificationController) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := c.repo.MarkAllRead(actor(r).ID); err != nil {
		respondErr(w, err)
		return
	}
	response.Success(w, map[string]string{"message": "All marked read"})
}

// Socket upgrades the connection for real-time notification pushes.
func (c *NotificationController) Socket(w http.ResponseWriter, r *http.Request) {
	ws.Upgrade(w, r, c.hub, actor(r).ID)
}
