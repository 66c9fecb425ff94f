package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"om-svc-order/internal/adapter/cache"
	"om-svc-order/internal/adapter/config"
	"om-svc-order/internal/adapter/handler/http"
	"om-svc-order/internal/adapter/logger"
	"om-svc-order/internal/adapter/storage"
	"om-svc-order/internal/adapter/storage/repository"
	"om-svc-order/internal/core/service"
)

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		fmt.Printf("config error:%s", err)
		return
	}

	log := logger.NewLogger(conf.App)
	if log == nil {
		fmt.Printf("error creating log")
		return
	}
	defer func() {
		err := log.Sync()
		if err != nil {
			fmt.Printf("log error: %s", err)
		}
	}()

	ctx := context.Background()

	db, err := storage.NewDBStorage(ctx, conf.Database)
	if err != nil {
		log.Error("database error", zap.Error(err))
		return
	}
	err = db.RunMigrations()
	if err != nil {
		log.Error("database migration error", zap.Error(err))
		return
	}

	repo, err := repository.NewRepository(db)
	if err != nil {
		log.Error("order repo creating error", zap.Error(err))
		return
	}

	cacheStore, err := cache.NewStore(conf.Redis.Addr, conf.Redis.Namespace, log.Named("Cache"))
	if err != nil {
		log.Error("cache store creating error", zap.Error(err))
		return
	}
	defer func() {
		if err := cacheStore.Close(); err != nil {
			log.Error("cache store close error", zap.Error(err))
		}
	}()

	svc, err := service.NewService(repo, cacheStore, conf.Redis.TTL, log.Named("Service"))
	if err != nil {
		log.Error("order service creating error", zap.Error(err))
		return
	}

	orderHandler, err := http.NewOrderHandler(svc, log.Named("Order handler"))
	if err != nil {
		log.Error("order handler creating error", zap.Error(err))
		return
	}
	itemHandler, err := http.NewItemHandler(svc, log.Named("Item handler"))
	if err != nil {
		log.Error("item handler creating error", zap.Error(err))
		return
	}
	historyHandler, err := http.NewHistoryHandler(svc, log.Named("History handler"))
	if err != nil {
		log.Error("history handler creating error", zap.Error(err))
		return
	}
	eventTypeHandler, err := http.NewEventTypeHandler(svc, log.Named("Event type handler"))
	if err != nil {
		log.Error("event type handler creating error", zap.Error(err))
		return
	}

	r, err := http.NewRouter(conf.HTTP, orderHandler, itemHandler, historyHandler, eventTypeHandler)
	if err != nil {
		log.Error("router creating error", zap.Error(err))
		return
	}

	err = r.Serve(conf.HTTP.HostString)
	if err != nil {
		log.Error("router serve error", zap.Error(err))
		return
	}
}
