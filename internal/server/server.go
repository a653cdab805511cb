package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/securedtampa/intake-backend/internal/handler"
	"github.com/securedtampa/intake-backend/internal/imagestore"
	"github.com/securedtampa/intake-backend/internal/inventory"
	"github.com/securedtampa/intake-backend/internal/marketplace"
	"github.com/securedtampa/intake-backend/internal/repository"
	"github.com/securedtampa/intake-backend/internal/service"
	"github.com/securedtampa/intake-backend/internal/upc"
	"gorm.io/gorm"
)

type Server struct {
	e           *echo.Echo
	catalogRepo repository.CatalogRepository
	sessionRepo repository.SessionRepository
	historyRepo repository.HistoryRepository
	sha         string
	build       string
}

func New(db *gorm.DB, market marketplace.Client, upcClient upc.Client, committer inventory.Committer, uploader imagestore.Uploader, sha, buildTime string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-Register-Key"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return false, nil
			}
			host := u.Hostname()
			if host == "securedtampa.com" || strings.HasSuffix(host, ".securedtampa.com") || strings.HasSuffix(host, "vercel.app") {
				return true, nil
			}
			return false, nil
		},
	}))

	catalogRepo := repository.NewCatalogRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	historyRepo := repository.NewHistoryRepository(db)

	resolver := service.NewResolverService(catalogRepo, market, upcClient)
	enricher := service.NewEnricher(market)
	sessionSvc := service.NewSessionService(sessionRepo, enricher)
	intakeSvc := service.NewIntakeService(resolver, enricher, sessionSvc)
	commitSvc := service.NewCommitService(sessionRepo, historyRepo, committer)

	scanHandler := handler.NewScanHandler(intakeSvc, sessionSvc)
	sessionHandler := handler.NewSessionHandler(sessionSvc)
	submitHandler := handler.NewSubmitHandler(commitSvc, historyRepo)
	searchHandler := handler.NewSearchHandler(market)
	imageHandler := handler.NewImageHandler(uploader, sessionSvc)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"ok":         "true",
			"git_sha":    sha,
			"build_time": buildTime,
		})
	})

	api := e.Group("/api")
	api.POST("/scan", scanHandler.Scan)
	api.POST("/scan/manual", scanHandler.ManualAdd)
	api.GET("/scan/session", sessionHandler.Get)
	api.POST("/scan/session/resume", sessionHandler.Resume)
	api.POST("/scan/session/discard", sessionHandler.Discard)
	api.POST("/scan/session/buyer", sessionHandler.SetBuyer)
	api.POST("/scan/phase", sessionHandler.SetPhase)
	api.PATCH("/scan/items/:localId", scanHandler.UpdateItem)
	api.DELETE("/scan/items/:localId", scanHandler.RemoveItem)
	api.POST("/scan/items/:localId/images", imageHandler.Upload)
	api.POST("/scan/submit", submitHandler.Submit)
	api.GET("/scan/history", submitHandler.History)
	api.GET("/search", searchHandler.Search)
	api.GET("/search/:productId", searchHandler.Detail)

	return &Server{
		e:           e,
		catalogRepo: catalogRepo,
		sessionRepo: sessionRepo,
		historyRepo: historyRepo,
		sha:         sha,
		build:       buildTime,
	}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

func (s *Server) SetDB(db *gorm.DB) {
	if s.catalogRepo != nil {
		s.catalogRepo.SetDB(db)
	}
	if s.sessionRepo != nil {
		s.sessionRepo.SetDB(db)
	}
	if s.historyRepo != nil {
		s.historyRepo.SetDB(db)
	}
}
