package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agenthands/diary/internal/config"
	"github.com/agenthands/diary/internal/core"
	"github.com/agenthands/diary/internal/core/model"
	"github.com/agenthands/diary/internal/llm"
	"github.com/agenthands/diary/internal/nlu"
	"github.com/agenthands/diary/internal/store"
)

type Server struct {
	Processor *core.Processor

	mu       sync.RWMutex
	sessions map[string]*model.Session
}

func NewServer() *Server {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Warning: could not load %s: %v. Continuing with env-only configuration", cfgPath, err)
		cfg = &config.Config{}
	}

	// Override config with env vars if present
	if envProvider := os.Getenv("NLU_PROVIDER"); envProvider != "" {
		cfg.NLU.Provider = envProvider
	}
	if envModel := os.Getenv("NLU_MODEL"); envModel != "" {
		cfg.NLU.Model = envModel
	}
	if envAPIKey := os.Getenv("NLU_API_KEY"); envAPIKey != "" {
		cfg.NLU.APIKey = envAPIKey
	}
	if envBaseURL := os.Getenv("NLU_BASE_URL"); envBaseURL != "" {
		cfg.NLU.BaseURL = envBaseURL
	}
	if envBackend := os.Getenv("STORE_BACKEND"); envBackend != "" {
		cfg.Storage.Backend = envBackend
	}
	if envURI := os.Getenv("MEMGRAPH_URI"); envURI != "" {
		cfg.Storage.Memgraph.URI = envURI
	}
	if envUser := os.Getenv("MEMGRAPH_USER"); envUser != "" {
		cfg.Storage.Memgraph.User = envUser
	}
	if envPass := os.Getenv("MEMGRAPH_PASSWORD"); envPass != "" {
		cfg.Storage.Memgraph.Password = envPass
	}
	if envPath := os.Getenv("BADGER_PATH"); envPath != "" {
		cfg.Storage.Badger.Path = envPath
	}

	// Default to the embedded store
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = "badger"
	}

	noteStore, err := store.New(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize note store: %v", err)
	}

	// Without a configured NLU provider the bot still logs, welcomes and
	// collects names; intents simply never resolve.
	var recognizer nlu.Recognizer = nlu.Disabled{}
	if cfg.NLU.Provider != "" {
		llmClient, err := llm.NewClient(context.Background(), cfg.NLU)
		if err != nil {
			log.Fatalf("Failed to initialize LLM client: %v", err)
		}
		recognizer = nlu.NewLLMRecognizer(llmClient, cfg.NLU.Prompt)
	} else {
		log.Println("No NLU provider configured, intent routing disabled")
	}

	return NewServerWith(core.NewProcessor(noteStore, recognizer, cfg.Bot.Welcome))
}

// NewServerWith wires a server around an already-built processor.
func NewServerWith(p *core.Processor) *Server {
	return &Server{
		Processor: p,
		sessions:  make(map[string]*model.Session),
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.POST("/messages", s.HandleMessage)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

type MessageRequest struct {
	ConversationID string `json:"conversation_id"`
	ChannelID      string `json:"channel_id"`
	UserID         string `json:"user_id"`
	UserName       string `json:"user_name"`
	Text           string `json:"text"`
	Timestamp      string `json:"timestamp"`
}

type MessageResponse struct {
	ConversationID string   `json:"conversation_id"`
	Replies        []string `json:"replies"`
}

func (s *Server) HandleMessage(c *gin.Context) {
	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	timestamp := time.Now().UTC()
	if req.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339, req.Timestamp)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid timestamp, want RFC3339"})
			return
		}
		timestamp = parsed.UTC()
	}

	if req.ConversationID == "" {
		req.ConversationID = uuid.New().String()
	}

	turn := model.Turn{
		ConversationID: req.ConversationID,
		ChannelID:      req.ChannelID,
		UserID:         req.UserID,
		UserName:       req.UserName,
		Text:           req.Text,
		Timestamp:      timestamp,
	}

	sess := s.session(req.ConversationID)
	replies := s.Processor.Process(c.Request.Context(), turn, sess)

	c.JSON(http.StatusOK, MessageResponse{
		ConversationID: req.ConversationID,
		Replies:        replies,
	})
}

func (s *Server) session(conversationID string) *model.Session {
	s.mu.RLock()
	sess, ok := s.sessions[conversationID]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok = s.sessions[conversationID]; !ok {
		sess = &model.Session{}
		s.sessions[conversationID] = sess
	}
	return sess
}
