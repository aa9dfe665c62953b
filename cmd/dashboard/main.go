package main

import (
	"log"

	"github.com/ivanoskov/gasto_efectivo/internal/config"
	"github.com/ivanoskov/gasto_efectivo/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	srv := server.New(cfg)

	log.Printf("gasto efectivo dashboard listening on %s", cfg.ListenAddr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
