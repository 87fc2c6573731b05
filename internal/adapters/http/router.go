package http

import (
	"context"
	"net/http"
	"os"

	"github.com/dkeye/Canvas/internal/adapters/signal"
	"github.com/dkeye/Canvas/internal/board"
	"github.com/dkeye/Canvas/internal/config"
	"github.com/dkeye/Canvas/internal/core"
	"github.com/dkeye/Canvas/internal/domain"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"
)

const clientTokenKey = "client_token"

// RoomLister is the read-only slice of the room directory exposed over REST.
type RoomLister interface {
	Rooms(ns domain.Namespace) []core.RoomInfo
	Members(room domain.RoomID, ns domain.Namespace) []core.SessionID
	SessionCount() int
}

type Deps struct {
	Signal     *signal.SignalWSController
	Rooms      RoomLister
	Boards     board.Store
	ICEServers []webrtc.ICEServer
}

func genClientToken() string {
	return uuid.NewString()
}

// ClientTokenMiddleware keeps a stable per-browser token in the signed session cookie.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		token, _ := session.Get(clientTokenKey).(string)
		if token == "" {
			token = genClientToken()
			session.Set(clientTokenKey, token)
			if err := session.Save(); err != nil {
				log.Error().Err(err).Str("module", "adapters.http").Msg("save session")
			}
		}
		c.Set(clientTokenKey, token)
		c.Next()
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, deps Deps) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	store.Options(sessions.Options{Path: "/", MaxAge: 3600 * 24 * 7, HttpOnly: true})
	r.Use(sessions.Sessions("CanvasSessions", store))
	r.Use(ClientTokenMiddleware())

	if _, err := os.Stat(cfg.StaticPath); err == nil {
		r.Static("/static", cfg.StaticPath)
		r.GET("/", func(c *gin.Context) {
			c.File(cfg.StaticPath + "/index.html")
		})
		log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("serving static files")
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"sessions":    deps.Rooms.SessionCount(),
			"connections": deps.Signal.Hub.Count(),
		})
	})

	api := r.Group("/api")

	ws := func(c *gin.Context) {
		log.Debug().Str("module", "adapters.http").Str("client_token", c.GetString(clientTokenKey)).Msg("ws signal endpoint hit")
		deps.Signal.HandleSignal(ctx, c)
	}
	api.GET("/ws", ws)
	r.GET("/socket", ws)

	api.GET("/rooms", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rooms": deps.Rooms.Rooms(domain.Drawing)})
	})

	api.GET("/rooms/:name/members", func(c *gin.Context) {
		name := domain.RoomID(c.Param("name"))
		c.JSON(http.StatusOK, gin.H{
			"room":         name,
			"members":      deps.Rooms.Members(name, domain.Drawing),
			"voiceMembers": deps.Rooms.Members(domain.VoiceRoomID(name), domain.Voice),
		})
	})

	api.GET("/voice/rooms", func(c *gin.Context) {
		rooms := deps.Rooms.Rooms(domain.Voice)
		for i := range rooms {
			rooms[i].Name = domain.BoardRoomID(rooms[i].Name)
		}
		c.JSON(http.StatusOK, gin.H{"rooms": rooms})
	})

	api.GET("/voice/ice-servers", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"iceServers": deps.ICEServers})
	})

	registerBoardRoutes(api, deps.Boards)

	log.Info().Str("module", "adapters.http").Msg("router setup")
	return r
}
