package main

import (
	"context"
	"log"

	"github.com/cb9060218-del/thunder-res-backend/config"
	httpapi "github.com/cb9060218-del/thunder-res-backend/internal/api/http"
	"github.com/cb9060218-del/thunder-res-backend/internal/service"
	"github.com/cb9060218-del/thunder-res-backend/internal/storage"
)

func main() {
	cfg := config.Load()

	db := config.MustInitPostgres(cfg)
	defer db.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(context.Background()); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	var menuCache service.MenuCache
	if client := config.MustInitRedis(cfg); client != nil {
		defer client.Close()
		menuCache = storage.NewMenuCache(client, cfg.MenuCacheTTL)
	}

	var publisher service.OrderPublisher
	if writer := config.NewKafkaWriter(cfg); writer != nil {
		defer writer.Close()
		publisher = storage.NewKafkaPublisher(writer)
	}

	menuSvc := service.NewMenuService(repo, menuCache)
	orderSvc := service.NewOrderService(repo, repo, publisher, service.OrderOptions{
		TrustClientPrice:  cfg.TrustClientPrice,
		StrictReadyUpdate: cfg.StrictReadyUpdate,
		Timeout:           cfg.OrderTimeout,
	})

	handler := httpapi.NewHandler(menuSvc, orderSvc, service.DefaultQRGenerator{BaseURL: cfg.QRBaseURL})
	httpapi.StartServer(":"+cfg.Port, httpapi.NewRouter(handler))
}
