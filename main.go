package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/shadowgrams/go-server/internal/httpserver"
	"github.com/shadowgrams/go-server/internal/puzzle"
	"github.com/shadowgrams/go-server/internal/tiles"
	"github.com/shadowgrams/go-server/internal/words"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	db, err := openDB(getEnv("DB_PATH", "./data/app.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("apply migrations")
	}

	alphabet := tiles.Default()
	lib, err := puzzle.LoadLibraryFromEnv(alphabet)
	if err != nil {
		log.Fatal().Err(err).Msg("load puzzle library")
	}
	loc, err := time.LoadLocation(getEnv("DAILY_TZ", puzzle.DefaultTimezone))
	if err != nil {
		log.Fatal().Err(err).Msg("load reference timezone")
	}
	resolver := puzzle.NewResolver(lib, puzzle.DefaultLaunch(), loc)

	// A missing word list degrades submissions, not the whole service.
	list, err := words.LoadFromEnv()
	if err != nil {
		log.Error().Err(err).Msg("word list unavailable")
		list = nil
	}

	srv := httpserver.New(resolver, list, db)
	port := getEnv("PORT", "5176")
	log.Info().Str("port", port).Int("puzzles", lib.Len()).Msg("starting shadowgrams-go")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
