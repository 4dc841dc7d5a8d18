package main

import (
	"rental_frontend/startup"
	"rental_frontend/startup/config"
)

func main() {
	cfg := config.NewConfig()
	server := startup.NewServer(cfg)
	server.Start()
}
