package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/ButyrinIA/kioteca/internal/config"
	"github.com/ButyrinIA/kioteca/internal/relay"
)

func main() {
	configPath := flag.String("config", "config.yaml", "путь к файлу конфигурации")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Не удалось загрузить конфигурацию: %v", err)
	}

	hub := relay.NewHub()
	http.Handle("/channel", hub)

	log.Printf("Запуск ретранслятора канала %q на %s", cfg.Channel.Name, cfg.Relay.Addr)
	if err := http.ListenAndServe(cfg.Relay.Addr, nil); err != nil {
		log.Fatalf("Не удалось запустить ретранслятор: %v", err)
	}
}
