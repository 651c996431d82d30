// Package web provides the web dashboard server for lshkit: a small fiber
// app exposing live index stats, an ad-hoc insert/query API over an
// in-memory lshindex.Index, and a websocket push channel for newly
// discovered neighbor pairs (spec §6's "interactive exploration" surface).
package web

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/fluxfuzzer/lshkit/internal/config"
	"github.com/fluxfuzzer/lshkit/internal/lshindex"
	"github.com/fluxfuzzer/lshkit/internal/lshparam"
	"github.com/fluxfuzzer/lshkit/internal/shingle"
	"github.com/fluxfuzzer/lshkit/internal/sketch"
	"github.com/fluxfuzzer/lshkit/pkg/types"
)

// Server hosts the live dashboard: a banded LSH index fed by /api/insert,
// queried by /api/query, with every state change mirrored to websocket
// clients.
type Server struct {
	app *fiber.App

	mu       sync.RWMutex
	idx      *lshindex.Index
	family   *sketch.Family
	cfg      *config.Config
	nextSeq  types.Label
	docCount int64
	pairs    int64
	startedAt time.Time

	clients   map[*websocket.Conn]bool
	clientsMu sync.Mutex
	broadcast chan []byte
}

// indexStats is the JSON shape served by /api/stats and broadcast on
// every state change.
type indexStats struct {
	DocumentsIndexed int64   `json:"documentsIndexed"`
	PairsFound       int64   `json:"pairsFound"`
	Bands            int     `json:"bands"`
	Rows             int     `json:"rows"`
	NSamples         int     `json:"nSamples"`
	Threshold        float64 `json:"threshold"`
	ElapsedSeconds   float64 `json:"elapsedSeconds"`
}

// neighborPairMsg is broadcast over /ws whenever an insert surfaces
// neighbors already present in the index.
type neighborPairMsg struct {
	Query     types.Label   `json:"query"`
	Neighbors []types.Label `json:"neighbors"`
}

// NewServer builds a Server with a fresh in-memory index over the given
// configuration. If cfg.LSH.Bands/Rows are unset, the band configuration
// is chosen by internal/lshparam.Optimize.
func NewServer(cfg *config.Config) (*Server, error) {
	width := types.B64
	if cfg.Sketch.MinHashBits == 32 {
		width = types.B32
	}

	family, err := sketch.NewFamily(cfg.Sketch.Seed, cfg.Sketch.NSamples, width, cfg.Sketch.CacheSize)
	if err != nil {
		return nil, err
	}

	params := lshparam.Params{Bands: cfg.LSH.Bands, Rows: cfg.LSH.Rows}
	if params.Bands == 0 {
		params, err = lshparam.Optimize(cfg.Sketch.NSamples, cfg.LSH.Threshold, lshparam.Weights{
			FalsePositive: cfg.LSH.WeightFalsePos,
			FalseNegative: cfg.LSH.WeightFalseNeg,
		})
		if err != nil {
			return nil, err
		}
	}

	idx, err := lshindex.New(cfg.Sketch.NSamples, params, cfg.LSH.Dedup)
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	server := &Server{
		app:       app,
		idx:       idx,
		family:    family,
		cfg:       cfg,
		startedAt: time.Now(),
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan []byte, 100),
	}

	server.setupRoutes()
	go server.handleBroadcast()

	return server, nil
}

func (s *Server) setupRoutes() {
	s.app.Use(cors.New())

	api := s.app.Group("/api")
	api.Get("/stats", s.handleStats)
	api.Post("/insert", s.handleInsert)
	api.Post("/query", s.handleQuery)

	s.app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	s.app.Get("/ws", websocket.New(s.handleWebSocket))

	s.app.Get("/", s.handleDashboard)
	s.app.Get("/dashboard.js", s.handleDashboardJS)
	s.app.Get("/dashboard.css", s.handleDashboardCSS)
}

func (s *Server) sketchOf(content []byte) (*sketch.Sketch, error) {
	sk := s.family.NewSketch()
	if s.cfg.Sketch.DNA {
		set, err := shingle.DNA(content, s.cfg.Sketch.K, s.cfg.Sketch.Strict)
		if err != nil {
			return nil, err
		}
		sk.UpdateDNASet(set)
		return sk, nil
	}
	set, err := shingle.Text(content, s.cfg.Sketch.K)
	if err != nil {
		return nil, err
	}
	sk.UpdateMultiset(set)
	return sk, nil
}

// handleStats returns current index statistics.
func (s *Server) handleStats(c *fiber.Ctx) error {
	return c.JSON(s.snapshot())
}

func (s *Server) snapshot() indexStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return indexStats{
		DocumentsIndexed: s.docCount,
		PairsFound:       s.pairs,
		Bands:            s.idx.Bands,
		Rows:             s.idx.Rows,
		NSamples:         s.cfg.Sketch.NSamples,
		Threshold:        s.cfg.LSH.Threshold,
		ElapsedSeconds:   time.Since(s.startedAt).Seconds(),
	}
}

// handleInsert sketches the posted content, inserts it into the live
// index, and broadcasts any neighbors it collides with.
func (s *Server) handleInsert(c *fiber.Ctx) error {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	if req.Content == "" {
		return c.Status(400).JSON(fiber.Map{"error": "content must not be empty"})
	}

	sk, err := s.sketchOf([]byte(req.Content))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	s.mu.Lock()
	label := s.nextSeq
	s.nextSeq++
	neighbors, err := s.idx.QueryThenInsert(sk.Lanes(), label)
	if err == nil {
		s.docCount++
		s.pairs += int64(len(neighbors))
	}
	s.mu.Unlock()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	s.BroadcastStats()
	if len(neighbors) > 0 {
		s.BroadcastPair(label, neighbors)
	}

	return c.JSON(fiber.Map{"label": label, "neighbors": neighbors})
}

// handleQuery sketches the posted content and returns its neighbors
// without inserting it into the index.
func (s *Server) handleQuery(c *fiber.Ctx) error {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	if req.Content == "" {
		return c.Status(400).JSON(fiber.Map{"error": "content must not be empty"})
	}

	sk, err := s.sketchOf([]byte(req.Content))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	s.mu.RLock()
	neighbors, err := s.idx.Query(sk.Lanes())
	s.mu.RUnlock()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"neighbors": neighbors})
}

// handleWebSocket handles WebSocket connections for real-time updates.
func (s *Server) handleWebSocket(c *websocket.Conn) {
	s.clientsMu.Lock()
	s.clients[c] = true
	s.clientsMu.Unlock()

	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, c)
		s.clientsMu.Unlock()
		c.Close()
	}()

	data, _ := json.Marshal(map[string]interface{}{
		"type": "stats",
		"data": s.snapshot(),
	})
	c.WriteMessage(websocket.TextMessage, data)

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}

// handleBroadcast sends updates to all connected clients.
func (s *Server) handleBroadcast() {
	for msg := range s.broadcast {
		s.clientsMu.Lock()
		for client := range s.clients {
			if err := client.WriteMessage(websocket.TextMessage, msg); err != nil {
				client.Close()
				delete(s.clients, client)
			}
		}
		s.clientsMu.Unlock()
	}
}

// BroadcastStats sends a stats update to all connected clients.
func (s *Server) BroadcastStats() {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "stats",
		"data": s.snapshot(),
	})

	select {
	case s.broadcast <- data:
	default:
	}
}

// BroadcastPair sends a newly discovered neighbor set to all connected
// clients.
func (s *Server) BroadcastPair(query types.Label, neighbors []types.Label) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "pair",
		"data": neighborPairMsg{Query: query, Neighbors: neighbors},
	})

	select {
	case s.broadcast <- data:
	default:
	}
}

// Start starts the web server.
func (s *Server) Start(addr string) error {
	log.Printf("[*] lshkit dashboard listening at http://localhost%s\n", addr)
	return s.app.Listen(addr)
}

// Stop stops the web server.
func (s *Server) Stop() error {
	return s.app.Shutdown()
}
