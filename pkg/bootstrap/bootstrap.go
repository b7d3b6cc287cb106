// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/api"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/cache"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/config"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/database"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/database/model"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/embedding"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/events"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/logger/log"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/service"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/vectorstore"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Server owns every long-lived resource: the database pool, the provider
// HTTP client, the event dispatcher and the HTTP listener
type Server struct {
	config     *config.Config
	db         *gorm.DB
	httpClient *http.Client
	httpServer *http.Server
	dispatcher *events.Dispatcher

	skillFacade     *database.SkillFacade
	candidateFacade *database.CandidateFacade

	skillService     *service.SkillService
	candidateService *service.CandidateService
	searchService    *service.SearchService
}

// NewServer opens the resources described by cfg and wires the services
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := connectDatabase(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := migrate(db); err != nil {
			closeDatabase(db)
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	httpClient := &http.Client{Timeout: cfg.Embedding.Timeout}
	embedder := embedding.NewOpenAIEmbedder(cfg.Embedding, httpClient)
	if embedder.Available() {
		log.Infof("Embedding enabled: model=%s, dimension=%d", cfg.Embedding.Model, config.VectorDimension)
	} else {
		log.Infof("Embedding provider not configured, embeddings will not be generated")
	}

	skillFacade := database.NewSkillFacade(db)
	candidateFacade := database.NewCandidateFacade(db)
	taxonomyFacade := database.NewTaxonomyFacade(db)
	vectorFacade := database.NewVectorFacade(db, config.VectorDimension)
	mirror := vectorstore.NewMirror(vectorFacade, cfg.VectorStore.MirrorTimeout)

	dispatcher := events.NewDispatcher()
	var summaries *cache.Store[service.CandidateSummary]
	if cfg.Cache.Enabled {
		summaries = cache.New[service.CandidateSummary](cfg.Cache.TTL, cfg.Cache.CleanupInterval)
		dispatcher.RegisterListener(cache.NewEvictionListener(summaries))
	}

	s := &Server{
		config:           cfg,
		db:               db,
		httpClient:       httpClient,
		dispatcher:       dispatcher,
		skillFacade:      skillFacade,
		candidateFacade:  candidateFacade,
		skillService:     service.NewSkillService(skillFacade, taxonomyFacade, embedder, mirror, dispatcher),
		candidateService: service.NewCandidateService(candidateFacade, skillFacade, embedder, mirror, vectorstore.DefaultSkipPolicy(), dispatcher),
		searchService:    service.NewSearchService(candidateFacade, vectorFacade, embedder, summaries, cfg.Search),
	}
	s.httpServer = newHTTPServer(cfg.Server.Port, s.router())
	return s, nil
}

func (s *Server) router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(api.RequestIDMiddleware())
	router.Use(api.LoggerMiddleware())
	router.Use(gin.Recovery())

	handler := api.NewHandler(s.searchService, s.skillService, s.candidateService)
	api.RegisterRoutes(router, handler)
	return router
}

func newHTTPServer(port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: handler,
	}
}

// SkillService returns the skill write path
func (s *Server) SkillService() *service.SkillService { return s.skillService }

// CandidateService returns the candidate write path
func (s *Server) CandidateService() *service.CandidateService { return s.candidateService }

// SkillFacade returns the skill store
func (s *Server) SkillFacade() *database.SkillFacade { return s.skillFacade }

// CandidateFacade returns the candidate store
func (s *Server) CandidateFacade() *database.CandidateFacade { return s.candidateFacade }

// Start serves HTTP until Stop is called. It returns nil right away when
// Stop already ran.
func (s *Server) Start() error {
	log.Infof("Talent matcher API listening on port %d", s.config.Server.Port)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop shuts the listener down, drains pending listeners and releases the
// database pool and the provider client
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := s.httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	s.dispatcher.Wait()
	s.httpClient.CloseIdleConnections()
	if err := closeDatabase(s.db); err != nil {
		errs = append(errs, fmt.Errorf("database close: %w", err))
	}
	return errors.Join(errs...)
}

func connectDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

func closeDatabase(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// vectorIndexes are created best effort; without pgvector the matcher
// still runs on keyword search
var vectorIndexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_skills_embedding_vec ON skills USING hnsw (embedding_vec vector_cosine_ops)",
	"CREATE INDEX IF NOT EXISTS idx_candidates_bio_embedding_vec ON candidates USING hnsw (bio_embedding_vec vector_cosine_ops)",
}

func migrate(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		log.Warnf("pgvector extension unavailable: %v", err)
	}

	if err := db.AutoMigrate(
		&model.Discipline{},
		&model.Category{},
		&model.Subcategory{},
		&model.Skill{},
		&model.Candidate{},
	); err != nil {
		return err
	}

	for _, stmt := range vectorIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			log.Warnf("Failed to create vector index: %v", err)
		}
	}
	return nil
}
