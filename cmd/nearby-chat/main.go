package main

import (
	"context"
	"fmt"
	"nearby-chat/bridge"
	"nearby-chat/internal"
	"nearby-chat/moderation"
	"nearby-chat/repositories"
	"nearby-chat/runtime"
	"nearby-chat/runtime/workers"
	"nearby-chat/sink"
	"nearby-chat/transport/lanp2p"
	"os"
	"os/signal"
	"syscall"

	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "nearby-chat terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires the session to the LAN transport and the terminal, and keeps
// every deferred cleanup on the way out.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	config, err := internal.LoadConfig()
	if err != nil {
		return exitConfig, err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Transport
	transport, err := lanp2p.New(log, lanp2p.Config{
		ListenAddr:   config.ListenAddr,
		DiscoveryTTL: config.DiscoveryTTL,
	})
	if err != nil {
		return exitRuntime, err
	}

	opts := []runtime.Option{
		runtime.WithServiceTag(config.ServiceTag),
		runtime.WithInviteTimeout(config.InviteTimeout),
		runtime.WithInboxSize(config.InboxSize),
		runtime.WithSinkTimeout(config.SinkTimeout),
		runtime.WithRestartInterval(config.RestartInterval),
		runtime.WithCapacityMonitor(config.MetricInterval, config.LowCapacity),
	}

	// 3. Moderation
	words := config.Words()
	if config.CensoredDir != "" {
		dictionary, err := moderation.LoadDictionaries(os.DirFS(config.CensoredDir))
		if err != nil {
			return exitConfig, fmt.Errorf("loading censored words: %w", err)
		}
		log.Info("Censored words loaded", "count", len(dictionary.Words), "languages", dictionary.Languages)
		words = append(words, dictionary.Words...)
	}
	if len(words) > 0 {
		char, err := internal.CharacterRune(config.CharReplacement)
		if err != nil {
			return exitConfig, err
		}
		moderator, err := moderation.NewModerator(words, char, log)
		if err != nil {
			return exitConfig, err
		}
		opts = append(opts, runtime.WithCensor(moderator))
	}

	// 4. Transcript (BadgerDB)
	var db *badger.DB
	if config.TranscriptPath != "" {
		db, err = badger.Open(badger.DefaultOptions(config.TranscriptPath).
			WithLoggingLevel(badger.WARNING))
		if err != nil {
			return exitRuntime, fmt.Errorf("transcript opening failed: %w", err)
		}
		defer func() {
			log.Info("Closing transcript...")
			_ = db.Close()
		}()
		repository := repositories.NewTranscriptRepository(db, log, config.LimitMessages)
		opts = append(opts, runtime.WithSink("transcript", sink.NewTranscriptSink(repository, log)))
	}

	// 5. Session
	session := runtime.NewPeerSession(log, transport, config.Mode(), config.DisplayName, opts...)
	if err := session.Create(ctx); err != nil {
		_ = transport.Close()
		return exitRuntime, fmt.Errorf("session failed to start: %w", err)
	}
	defer session.Teardown()

	if db != nil && config.DebugPort > 0 {
		stats := internal.MergeStats(internal.ProcessStats, func() map[string]any {
			snapshot := session.Snapshot()
			return map[string]any{
				"Mode":      snapshot.Mode.String(),
				"Status":    snapshot.Status().String(),
				"Connected": len(snapshot.Connected),
				"Messages":  len(snapshot.Messages),
			}
		})
		inspector := internal.StartDebugServer(db, config.DebugPort, "/inspect", internal.TranscriptMapper, stats)
		defer func() { _ = inspector.Close() }()
		log.Info("Transcript inspector started", "url", fmt.Sprintf("http://localhost:%d/inspect", config.DebugPort))
	}

	// 6. Bridge
	if config.BridgeAddr != "" {
		sup := workers.NewSupervisor(log, config.RestartInterval)
		sup.Add(bridge.NewServer(log, session, config.BridgeAddr, config.SubscriberBuffer))
		go sup.Run(ctx)
		defer sup.Stop()
	}

	// 7. Terminal
	out := newConsole(os.Stdout, session, config.DisplayName)
	updates, unsubscribe := session.Subscribe("console", config.SubscriberBuffer)
	defer unsubscribe()
	go out.render(updates)
	go out.readInput(ctx, os.Stdin, stop)

	select {
	case <-ctx.Done():
	case <-session.Done():
	}
	log.Info("Leaving the room", "messages", len(session.Messages()))
	return exitOK, nil
}
