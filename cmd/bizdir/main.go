package main

import (
	"context"
	"log/slog"
	"os"

	"bizdir/config"
	"bizdir/internal/delivery"
	"bizdir/internal/delivery/api"
	"bizdir/internal/delivery/api/middleware"
	"bizdir/internal/delivery/api/router/handler"
	"bizdir/internal/domain/repository"
	"bizdir/internal/infra/auth"
	logs "bizdir/internal/infra/log"
	mongostore "bizdir/internal/infra/persistence/mongo"
	"bizdir/internal/infra/persistence/postgres"
	"bizdir/internal/infra/pubsub"
	"bizdir/internal/infra/qrcode"
	"bizdir/internal/infra/ratelimit"
	"bizdir/internal/infra/storage"
	"bizdir/internal/usecase/impl"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		mongostore.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			newBusinessRepository,
			newAdminRepository,
		),
	)
}

// newBusinessRepository picks the store opened for storage.driver; the other handle is nil.
func newBusinessRepository(db *gorm.DB, mdb *mongo.Database) repository.BusinessRepository {
	if mdb != nil {
		return mongostore.NewBusinessRepository(mdb)
	}

	return postgres.NewBusinessRepository(db)
}

func newAdminRepository(db *gorm.DB, mdb *mongo.Database) repository.AdminRepository {
	if mdb != nil {
		return mongostore.NewAdminRepository(mdb)
	}

	return postgres.NewAdminRepository(db)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			qrcode.NewQRCodeService,
			storage.NewImageStorage,
			ratelimit.NewStore,
		),
		pubsub.Module,
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewBusinessService,
			impl.NewAdminService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewBusinessHandler,
			handler.NewAuthHandler,
			handler.NewUploadHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
