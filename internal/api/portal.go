package api

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"portal-cli/internal/model"
)

// The remaining portal modules are uniform CRUD: list + show + the odd
// create. No reconciliation logic lives here.

func (c *Client) Me(ctx context.Context) (model.User, error) {
	var u model.User
	err := c.get(ctx, "/api/me", nil, &u)
	return u, err
}

func (c *Client) ListNews(ctx context.Context, limit int) ([]model.NewsPost, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out struct {
		Data []model.NewsPost `json:"data"`
	}
	err := c.get(ctx, "/api/news", q, &out)
	return out.Data, err
}

func (c *Client) GetNews(ctx context.Context, id string) (model.NewsPost, error) {
	var p model.NewsPost
	err := c.get(ctx, "/api/news/"+url.PathEscape(id), nil, &p)
	return p, err
}

func (c *Client) ListThreads(ctx context.Context, limit int) ([]model.ForumThread, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out struct {
		Data []model.ForumThread `json:"data"`
	}
	err := c.get(ctx, "/api/forum/threads", q, &out)
	return out.Data, err
}

// GetThread returns the thread with replies populated.
func (c *Client) GetThread(ctx context.Context, id string) (model.ForumThread, error) {
	var t model.ForumThread
	err := c.get(ctx, "/api/forum/threads/"+url.PathEscape(id), nil, &t)
	return t, err
}

func (c *Client) CreateReply(ctx context.Context, threadID, body string) (model.ForumReply, error) {
	var r model.ForumReply
	err := c.post(ctx, "/api/forum/threads/"+url.PathEscape(threadID)+"/replies", map[string]any{"body": body}, &r)
	return r, err
}

// ListEvents returns calendar events in [from, to).
func (c *Client) ListEvents(ctx context.Context, from, to time.Time) ([]model.CalendarEvent, error) {
	q := url.Values{}
	if !from.IsZero() {
		q.Set("from", from.UTC().Format(time.RFC3339))
	}
	if !to.IsZero() {
		q.Set("to", to.UTC().Format(time.RFC3339))
	}
	var out struct {
		Data []model.CalendarEvent `json:"data"`
	}
	err := c.get(ctx, "/api/events", q, &out)
	return out.Data, err
}

func (c *Client) ListRooms(ctx context.Context) ([]model.Room, error) {
	var out struct {
		Data []model.Room `json:"data"`
	}
	err := c.get(ctx, "/api/rooms", nil, &out)
	return out.Data, err
}

func (c *Client) ListBookings(ctx context.Context, roomID string, day time.Time) ([]model.Booking, error) {
	q := url.Values{}
	if roomID != "" {
		q.Set("room", roomID)
	}
	if !day.IsZero() {
		q.Set("day", day.Format("2006-01-02"))
	}
	var out struct {
		Data []model.Booking `json:"data"`
	}
	err := c.get(ctx, "/api/bookings", q, &out)
	return out.Data, err
}

func (c *Client) CreateBooking(ctx context.Context, roomID, title string, startsAt, endsAt time.Time) (model.Booking, error) {
	body := map[string]any{
		"roomId":   roomID,
		"title":    title,
		"startsAt": startsAt.UTC().Format(time.RFC3339),
		"endsAt":   endsAt.UTC().Format(time.RFC3339),
	}
	var b model.Booking
	err := c.post(ctx, "/api/bookings", body, &b)
	return b, err
}

func (c *Client) ChatHistory(ctx context.Context, channelID string, limit int) ([]model.ChatMessage, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out struct {
		Data []model.ChatMessage `json:"data"`
	}
	err := c.get(ctx, "/api/chat/"+url.PathEscape(channelID)+"/messages", q, &out)
	return out.Data, err
}
