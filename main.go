package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/espabot/internal/bot"
	"github.com/example/espabot/internal/database"
	"github.com/example/espabot/internal/wordsync"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; environment variables win either way
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Bootstrap the vocabulary before serving anything
	if url := os.Getenv("WORD_LIST_URL"); url != "" {
		bootstrapper := wordsync.NewBootstrapper(database.NewWordRepository(), database.NewMetaRepository())

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		remote, err := bootstrapper.FetchRemoteWordList(ctx, url)
		cancel()
		if err != nil {
			log.Printf("Skipping word list bootstrap: %v", err)
		} else if _, err := bootstrapper.Sync(remote); err != nil {
			log.Printf("Word list bootstrap failed: %v", err)
		}
	}

	b, err := bot.New()
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	done := make(chan struct{})

	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v", sig)
		b.Stop()
		close(done)
	}()

	log.Println("Bot started. Press Ctrl+C to stop.")
	go func() {
		if err := b.Start(); err != nil {
			log.Fatalf("Bot error: %v", err)
		}
	}()

	<-done
	log.Println("Bot stopped successfully")
}
