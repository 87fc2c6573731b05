package signal

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dkeye/Canvas/internal/app/orch"
	"github.com/dkeye/Canvas/internal/core"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var (
	ErrBackpressure = errors.New("backpressure")
	ErrConnClosed   = errors.New("connection closed")
)

type Options struct {
	ReadLimit      int64
	PingPeriod     time.Duration
	PongWait       time.Duration
	WriteWait      time.Duration
	SendBuffer     int
	AllowedOrigins []string
}

func (o Options) withDefaults() Options {
	if o.ReadLimit <= 0 {
		o.ReadLimit = 1 << 20
	}
	if o.PongWait <= 0 {
		o.PongWait = 60 * time.Second
	}
	if o.PingPeriod <= 0 || o.PingPeriod >= o.PongWait {
		o.PingPeriod = o.PongWait * 9 / 10
	}
	if o.WriteWait <= 0 {
		o.WriteWait = 5 * time.Second
	}
	if o.SendBuffer <= 0 {
		o.SendBuffer = 64
	}
	return o
}

type SignalWSController struct {
	Dispatcher *orch.Dispatcher
	Hub        *Hub
	Limiter    *RateLimiter

	opts     Options
	upgrader websocket.Upgrader
}

func NewSignalWSController(d *orch.Dispatcher, hub *Hub, limiter *RateLimiter, opts Options) *SignalWSController {
	opts = opts.withDefaults()
	return &SignalWSController{
		Dispatcher: d,
		Hub:        hub,
		Limiter:    limiter,
		opts:       opts,
		upgrader: websocket.Upgrader{
			CheckOrigin: originChecker(opts.AllowedOrigins),
		},
	}
}

// WsSignalConn is one live WebSocket. Sends never block: a full buffer is reported
// as ErrBackpressure and left to the policy.
type WsSignalConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func newWsSignalConn(ws *websocket.Conn, buffer int) *WsSignalConn {
	return &WsSignalConn{conn: ws, send: make(chan core.Frame, buffer)}
}

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrConnClosed
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

// HandleSignal upgrades the request and runs the session until the socket closes or ctx ends.
func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	ws, err := ctl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}

	conn := newWsSignalConn(ws, ctl.opts.SendBuffer)
	sid := ctl.Dispatcher.Connect()
	ctl.Hub.Attach(sid, conn)
	log.Info().Str("module", "signal").Str("sid", string(sid)).
		Str("client_token", c.GetString(clientTokenKey)).
		Str("remote", c.Request.RemoteAddr).
		Msg("new WS connection")

	ctx, cancel := context.WithCancel(ctx)
	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			cancel()
			ctl.Hub.Detach(sid, conn)
			ctl.Dispatcher.Disconnect(sid)
			if ctl.Limiter != nil {
				ctl.Limiter.Forget(sid)
			}
			conn.Close()
			log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("session closed")
		})
	}

	go ctl.writePump(ctx, sid, conn, cleanup)
	go ctl.readPump(ctx, sid, conn, cleanup)
}

// clientTokenKey mirrors the gin context key set by the HTTP client token middleware.
const clientTokenKey = "client_token"
