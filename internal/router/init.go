package router

import (
	"time"

	"github.com/buatanmy/discovery-backend/internal/application"
	"github.com/buatanmy/discovery-backend/internal/container"
	"github.com/buatanmy/discovery-backend/internal/infrastructure/postgres"
	handlers "github.com/buatanmy/discovery-backend/internal/interface/http"
	"github.com/buatanmy/discovery-backend/internal/interface/middleware"
	"github.com/buatanmy/discovery-backend/internal/router/modules"
)

// InitModules wires repositories, services and handlers from the container
// singletons and registers every feature module on the registry.
func InitModules(reg *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	voteRepo := postgres.NewVoteRepository(pool)
	commentRepo := postgres.NewCommentRepository(pool)

	var notify application.Publisher
	if pub := container.GetRabbitPub(); pub != nil {
		notify = pub
	}

	userSvc := application.NewUserService(userRepo, logger, container.GetGCS(), cfg.GCSBucket)
	productSvc := application.NewProductService(productRepo, userRepo, logger, container.GetES(), cfg.ESProductsIndex)
	voteSvc := application.NewVoteService(voteRepo, userRepo, productRepo, logger, notify)
	commentSvc := application.NewCommentService(commentRepo, userRepo, productRepo, logger, notify)

	userHandler := handlers.NewUserHandler(userSvc, logger)
	productHandler := handlers.NewProductHandler(productSvc, logger)
	voteHandler := handlers.NewVoteHandler(voteSvc, logger)
	commentHandler := handlers.NewCommentHandler(commentSvc, logger)

	// 60 writes per minute per client IP, fail-open without redis
	writeLimit := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath())

	reg.Add(modules.NewUserModule(userHandler, writeLimit))
	reg.Add(modules.NewProductModule(productHandler, commentHandler, writeLimit))
	reg.Add(modules.NewVoteModule(voteHandler, writeLimit))
	reg.Add(modules.NewCommentModule(commentHandler, writeLimit))
}
