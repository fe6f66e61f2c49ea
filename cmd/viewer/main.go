package main

import (
	"context"
	"fmt"
	"log"
	"nearby-chat/internal"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
)

type viewerConfig struct {
	TranscriptPath string `env:"TRANSCRIPT_PATH,required=true"`
	DebugPort      int    `env:"DEBUG_PORT,default=8081"`
}

// Serves the transcript of a stopped (or running) nearby-chat in read-only mode.
func main() {
	// 1. Load config
	_ = godotenv.Load()
	var config viewerConfig
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		log.Fatalf("Config error: %v", err)
	}

	// 2. Open Badger in Read-Only mode
	// BypassLockGuard allows opening while a chat process holds the lock
	opts := badger.DefaultOptions(config.TranscriptPath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open transcript: %v", err)
	}
	defer db.Close()

	// 3. Start the inspector only, no session is running here
	stats := internal.MergeStats(internal.ProcessStats, func() map[string]any {
		return map[string]any{
			"Status": "Viewer Mode (Read-Only)",
			"Time":   time.Now().Format(time.RFC822),
		}
	})
	srv := internal.StartDebugServer(db, config.DebugPort, "/inspect", internal.TranscriptMapper, stats)
	fmt.Printf("🌐 Viewer started at http://localhost:%d/inspect\n", config.DebugPort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
