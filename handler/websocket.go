package handler

import (
	"log"
	"sync"

	"festival_portal/model"
	"festival_portal/service"

	"github.com/gofiber/contrib/websocket"
	"github.com/robfig/cron/v3"
)

// CommentSocket pushes the live comment list of a submission to every
// connected client. Each connection owns its own fallback subscription, so a
// degraded client does not drag the whole room down a tier.
type CommentSocket struct {
	Service *service.CommentService

	mu    sync.Mutex
	rooms map[string]map[*websocket.Conn]*service.CommentSubscription
	cron  *cron.Cron
}

func NewCommentSocket(svc *service.CommentService) *CommentSocket {
	return &CommentSocket{
		Service: svc,
		rooms:   make(map[string]map[*websocket.Conn]*service.CommentSubscription),
	}
}

// Handle runs for the lifetime of one websocket connection.
func (s *CommentSocket) Handle(c *websocket.Conn) {
	submissionID := c.Params("submissionId")
	if submissionID == "" {
		c.Close()
		return
	}

	var writeMu sync.Mutex
	sub := s.Service.SubscribeToComments(submissionID, func(comments []model.Comment) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := c.WriteJSON(comments); err != nil {
			c.Close()
		}
	})

	s.mu.Lock()
	if s.rooms[submissionID] == nil {
		s.rooms[submissionID] = make(map[*websocket.Conn]*service.CommentSubscription)
	}
	s.rooms[submissionID][c] = sub
	s.mu.Unlock()

	defer func() {
		sub.Unsubscribe()
		s.mu.Lock()
		if s.rooms[submissionID] != nil {
			delete(s.rooms[submissionID], c)
			if len(s.rooms[submissionID]) == 0 {
				delete(s.rooms, submissionID)
			}
		}
		s.mu.Unlock()
		c.Close()
	}()

	// Drain client frames until the peer goes away. Incoming payloads are
	// ignored, the socket is push only.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}

// StartSweep closes connections whose subscription went terminal. Terminal
// subscriptions never deliver again, so keeping the socket open only hides
// the outage from the client.
func (s *CommentSocket) StartSweep() {
	s.cron = cron.New()
	s.cron.AddFunc("*/5 * * * *", func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for submissionID, room := range s.rooms {
			for conn, sub := range room {
				if sub.Terminal() {
					log.Printf("websocket: dropping terminal subscription for %s", submissionID)
					conn.Close()
					delete(room, conn)
				}
			}
			if len(room) == 0 {
				delete(s.rooms, submissionID)
			}
		}
	})
	s.cron.Start()
}

func (s *CommentSocket) StopSweep() {
	if s.cron != nil {
		s.cron.Stop()
	}
}
