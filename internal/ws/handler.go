package ws

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Gel788/metch-dating-app/internal/auth"
	"github.com/Gel788/metch-dating-app/internal/common/config"
	"github.com/Gel788/metch-dating-app/internal/common/logging"
	"github.com/Gel788/metch-dating-app/internal/realtime"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin is enforced by the CORS layer in front of the upgrade
		return true
	},
}

// Handler upgrades HTTP connections and attaches them to the relay hub
type Handler struct {
	hub        *realtime.Hub
	jwtService *auth.JWTService
	cfg        config.RealtimeConfig
	log        *logging.Logger
}

// NewHandler creates a websocket handler. jwtService may be nil, in which
// case connections are anonymous until they announce an identity at join.
func NewHandler(hub *realtime.Hub, jwtService *auth.JWTService, cfg config.RealtimeConfig, log *logging.Logger) *Handler {
	if log == nil {
		log = logging.Get()
	}
	return &Handler{
		hub:        hub,
		jwtService: jwtService,
		cfg:        cfg,
		log:        log,
	}
}

// Serve handles the websocket upgrade on a gin route
func (h *Handler) Serve(c *gin.Context) {
	authUserID := ""

	// A presented token must be valid; no token means the join payload is
	// trusted (the identity lookup is the session token when present).
	if token := extractToken(c.Request); token != "" && h.jwtService != nil {
		claims, err := h.jwtService.ValidateToken(token)
		if err != nil {
			h.log.Warn("websocket auth failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		authUserID = claims.UserID
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		id:            uuid.New().String(),
		authUserID:    authUserID,
		conn:          conn,
		send:          make(chan realtime.Envelope, h.cfg.SendBufferSize),
		hub:           h.hub,
		pingInterval:  h.cfg.PingInterval,
		readDeadline:  h.cfg.ReadDeadline,
		writeDeadline: h.cfg.WriteDeadline,
		log:           h.log,
	}

	go client.writePump()
	go client.readPump()

	h.log.Info("websocket client connected",
		zap.String("conn_id", client.id),
		zap.String("user_id", authUserID),
		zap.String("remote", conn.RemoteAddr().String()),
	)
}

func extractToken(r *http.Request) string {
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
