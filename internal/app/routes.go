package app

import (
	"github.com/lumen-studio/core/internal/middleware"
	"github.com/lumen-studio/core/internal/modules/audit"
	"github.com/lumen-studio/core/internal/modules/auth"
	"github.com/lumen-studio/core/internal/modules/catalog"
	"github.com/lumen-studio/core/internal/modules/category"
	"github.com/lumen-studio/core/internal/modules/contact"
	"github.com/lumen-studio/core/internal/modules/health"
	"github.com/lumen-studio/core/internal/pkg/mail"
	"go.uber.org/zap"
)

func (a *App) registerRoutes() {
	health.RegisterRoutes(a.router, a.db)

	api := a.router.Group("/api/v1")
	api.Use(middleware.RateLimit(a.rc.Raw()))
	api.Use(middleware.Idempotence(a.rc.Raw()))

	authMW := middleware.Auth(a.db)
	recorder := audit.NewRecorder(a.db, a.logger)

	authSvc := auth.NewService(a.db, a.logger)
	if err := authSvc.Seed(a.cfg.Admin); err != nil {
		a.logger.Warn("admin seed failed", zap.Error(err))
	}
	auth.NewHandler(authSvc).RegisterRoutes(api, authMW)

	assetPrefix := a.cfg.S3.Prefix
	if assetPrefix == "" {
		assetPrefix = "portfolio"
	}
	catalogSvc := catalog.NewService(a.db, a.store, recorder, a.logger, a.cfg.Catalog, assetPrefix)
	catalog.NewHandler(catalogSvc).RegisterRoutes(api)
	catalog.NewAdminHandler(catalogSvc).RegisterRoutes(api, authMW)

	categorySvc := category.NewService(a.db, recorder)
	category.NewHandler(categorySvc).RegisterRoutes(api, authMW)

	sender := mail.New(a.cfg.Mail)
	contactSvc := contact.NewService(a.db, recorder, sender, a.logger)
	contact.NewHandler(contactSvc).RegisterRoutes(api, authMW)

	auditSvc := audit.NewService(a.db)
	audit.NewHandler(auditSvc).RegisterRoutes(api, authMW)
}
