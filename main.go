package main

import (
	"Go_Mall/config"
	"Go_Mall/internal/repo"
	"Go_Mall/internal/service"
	"Go_Mall/internal/storage"
	"Go_Mall/internal/task"
	"Go_Mall/router"
)

// main initializes services and starts the HTTP server.
func main() {
	config.InitConfig()
	repo.InitMysql()
	repo.InitRedis()
	storage.InitMinio()
	service.Variants = task.Scheduler{}

	router := router.InitRouter()

	router.Run(":8000")
}
