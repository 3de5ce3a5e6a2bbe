package main

import (
	"log"

	"github.com/joeshaw/envdecode"

	"github.com/JoepDriesen/Rikker/server"
	"github.com/JoepDriesen/Rikker/store"
)

type config struct {
	Addr string `env:"ADDR,default=:8000"`
}

func main() {
	var cfg config
	envdecode.MustDecode(&cfg)

	s := server.NewServer(store.NewInMemoryGameStore())
	s.Addr = cfg.Addr

	log.Printf("listening on %s", cfg.Addr)
	if err := s.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
