package application

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/talentflowhq/talentflow/pkg/composables"
	"github.com/talentflowhq/talentflow/pkg/ws"
)

const ChannelAuthenticated = "authenticated"

// RecruiterChannel is the per-recruiter delivery channel.
func RecruiterChannel(recruiterID uuid.UUID) string {
	return fmt.Sprintf("recruiter/%s", recruiterID)
}

// TenantChannel reaches every live session in one organization.
func TenantChannel(tenantID uuid.UUID) string {
	return fmt.Sprintf("tenant/%s", tenantID)
}

// Connection is a live authenticated session.
type Connection interface {
	ws.Connectioner
	RecruiterID() uuid.UUID
	TenantID() uuid.UUID
}

type WsCallback func(conn Connection) error

// Huber routes messages to live sessions by channel. It owns the
// connection registry; nothing else in the process tracks sockets.
type Huber interface {
	http.Handler
	ForEach(channel string, f WsCallback) error
}

type HuberOptions struct {
	Logger      *logrus.Logger
	CheckOrigin func(r *http.Request) bool
}

type metaInfo struct {
	RecruiterID uuid.UUID
	TenantID    uuid.UUID
}

type huber struct {
	hub    *ws.Hub
	logger *logrus.Logger

	mu              sync.RWMutex
	connectionsMeta map[*ws.Connection]*metaInfo
}

func NewHub(opts *HuberOptions) Huber {
	appHub := &huber{
		logger:          opts.Logger,
		connectionsMeta: make(map[*ws.Connection]*metaInfo),
	}
	appHub.hub = ws.NewHub(&ws.HubOptions{
		Logger:       opts.Logger,
		CheckOrigin:  opts.CheckOrigin,
		OnConnect:    appHub.onConnect,
		OnDisconnect: appHub.onDisconnect,
	})
	return appHub
}

func (h *huber) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.hub.ServeHTTP(w, r)
}

// onConnect requires an authenticated recruiter: sessions without a
// resolved principal are rejected, so no channel ever spans tenants.
func (h *huber) onConnect(r *http.Request, hub *ws.Hub, conn *ws.Connection) error {
	recruiter, err := composables.UseRecruiter(r.Context())
	if err != nil {
		return err
	}
	meta := &metaInfo{
		RecruiterID: recruiter.ID,
		TenantID:    recruiter.TenantID,
	}
	hub.JoinChannel(ChannelAuthenticated, conn)
	hub.JoinChannel(RecruiterChannel(recruiter.ID), conn)
	hub.JoinChannel(TenantChannel(recruiter.TenantID), conn)

	h.mu.Lock()
	h.connectionsMeta[conn] = meta
	h.mu.Unlock()
	return nil
}

func (h *huber) onDisconnect(conn *ws.Connection) {
	h.mu.Lock()
	delete(h.connectionsMeta, conn)
	h.mu.Unlock()
}

func (h *huber) ForEach(channel string, f WsCallback) error {
	for _, conn := range h.hub.ConnectionsInChannel(channel) {
		h.mu.RLock()
		meta, ok := h.connectionsMeta[conn]
		h.mu.RUnlock()
		if !ok {
			h.logger.Error("websocket connection meta not found")
			continue
		}
		if err := f(&connection{meta: meta, conn: conn}); err != nil {
			return err
		}
	}
	return nil
}

type connection struct {
	meta *metaInfo
	conn ws.Connectioner
}

func (c *connection) SendMessage(message []byte) error {
	return c.conn.SendMessage(message)
}

func (c *connection) Close() error {
	return c.conn.Close()
}

func (c *connection) RecruiterID() uuid.UUID {
	return c.meta.RecruiterID
}

func (c *connection) TenantID() uuid.UUID {
	return c.meta.TenantID
}
