package main

import (
	"Go_Mall/config"
	"Go_Mall/internal/repo"
	"Go_Mall/internal/storage"
	"Go_Mall/internal/worker"
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	config.InitConfig()
	repo.InitMysql()
	storage.InitMinio()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Println("variant worker started")
	if err := worker.RunVariantWorker(ctx); err != nil {
		log.Fatalf("variant worker stopped: %v", err)
	}
}
