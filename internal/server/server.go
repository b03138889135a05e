package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"geminirelay/internal/config"
	"geminirelay/internal/core"
	"geminirelay/internal/metrics"
	"geminirelay/internal/relay"

	"github.com/gin-gonic/gin"
)

// Server application server
type Server struct {
	port    string
	ginMode string

	modelName string
	modelID   string
	location  string
	projectID string

	credential core.CredentialSource
	httpClient *http.Client
	router     *gin.Engine

	relay          *relay.Relay
	metricsService *metrics.MetricsService

	config config.ServerConfig

	shutdownCtx    context.Context
	shutdownCancel context.CancelFunc
}

// NewServer creates a new server instance
func NewServer(cfg config.ServerConfig) (*Server, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required in ServerConfig")
	}
	if cfg.Storage == nil {
		return nil, fmt.Errorf("storage is required in ServerConfig")
	}

	modelID := relay.ResolveModelID(cfg.ModelName)
	cfg.Logger.Info("Initializing server with model %s -> %s (location %s)", cfg.ModelName, modelID, cfg.Location)

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = createOptimizedHTTPClient(cfg.HTTPClientSettings)
	}

	metricsService := metrics.NewMetricsService(metrics.MetricsConfig{
		SaveInterval: core.MinSaveInterval,
		HistorySize:  core.HistoryBufferSize,
		Storage:      cfg.Storage,
		Logger:       cfg.Logger,
	})

	if err := metricsService.LoadStats(); err != nil {
		cfg.Logger.Warn("Failed to load historical stats: %v", err)
	}

	generator := relay.NewRelay(relay.Config{
		ModelName:  cfg.ModelName,
		ModelID:    modelID,
		Location:   cfg.Location,
		ProjectID:  cfg.ProjectID,
		Credential: cfg.Credential,
		HTTPClient: httpClient,
		Logger:     cfg.Logger,
	})

	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())

	server := &Server{
		port:           cfg.Port,
		ginMode:        cfg.GinMode,
		modelName:      cfg.ModelName,
		modelID:        modelID,
		location:       cfg.Location,
		projectID:      cfg.ProjectID,
		credential:     cfg.Credential,
		httpClient:     httpClient,
		relay:          generator,
		metricsService: metricsService,
		config:         cfg,
		shutdownCtx:    shutdownCtx,
		shutdownCancel: shutdownCancel,
	}

	server.setupRoutes()

	return server, nil
}

func createOptimizedHTTPClient(settings config.HTTPClientSettings) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:          settings.MaxIdleConns,
		MaxIdleConnsPerHost:   settings.MaxIdleConnsPerHost,
		MaxConnsPerHost:       settings.MaxConnsPerHost,
		IdleConnTimeout:       settings.IdleConnTimeout,
		TLSHandshakeTimeout:   settings.TLSHandshakeTimeout,
		ExpectContinueTimeout: core.HTTPExpectContinueTimeout,
		DisableKeepAlives:     false,
		ForceAttemptHTTP2:     true,
		ResponseHeaderTimeout: core.HTTPResponseHeaderTimeout,
		DisableCompression:    false,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   settings.RequestTimeout,
	}
}

// Run runs the server
func (s *Server) Run() error {
	s.setupGracefulShutdown()

	srv := &http.Server{
		Addr:              ":" + s.port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute, // generation calls block up to the upstream timeout
	}

	go func() {
		<-s.shutdownCtx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			s.config.Logger.Error("Server shutdown error: %v", err)
		}
	}()

	s.config.Logger.Info("Server starting on port %s", s.port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func (s *Server) setupGracefulShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		s.config.Logger.Info("Shutdown signal received, shutting down gracefully...")
		s.shutdownCancel()
	}()
}

func (s *Server) getStatsData(c *gin.Context) {
	stats := s.metricsService.GetRequestStats()
	periodStats := metrics.GetPeriodStats(stats.RequestHistory, 24, 24*7, 24*30)
	currentQPS := s.metricsService.GetQPS()

	serviceAccount := core.DefaultServiceAccountLabel
	if s.credential != nil {
		serviceAccount = s.credential.ServiceAccount()
	}

	c.JSON(http.StatusOK, gin.H{
		"currentTime":  time.Now().Format(core.TimeFormatDateTime),
		"currentQPS":   fmt.Sprintf("%.3f", currentQPS),
		"totalRecords": len(stats.RequestHistory),
		"stats24h":     periodStats[24],
		"stats7d":      periodStats[24*7],
		"stats30d":     periodStats[24*30],
		"modelInfo": gin.H{
			"name":     s.modelName,
			"id":       s.modelID,
			"location": s.location,
			"endpoint": s.relay.Endpoint(),
		},
		"credentialInfo": gin.H{
			"available":      s.credential != nil,
			"serviceAccount": serviceAccount,
			"projectId":      s.projectID,
		},
	})
}

// Close closes the server
func (s *Server) Close() error {
	if s.shutdownCancel != nil {
		s.shutdownCancel()
	}

	var closeErr error

	if s.metricsService != nil {
		if err := s.metricsService.Close(); err != nil {
			closeErr = errors.Join(closeErr, fmt.Errorf("close metrics service: %w", err))
		}
	}

	return closeErr
}
