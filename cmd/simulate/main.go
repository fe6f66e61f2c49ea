package main

import (
	"context"
	"flag"
	"fmt"
	"nearby-chat/domain"
	"nearby-chat/runtime"
	"nearby-chat/transport/memory"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

// simulate runs several sessions on one in-memory hub, lets them connect and
// talk, then prints what every participant ended up with.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Simulation failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	peers := flag.Int("peers", 4, "Number of participants")
	modeFlag := flag.String("mode", "1:N", "Session mode, 1:1 or 1:N")
	rounds := flag.Int("rounds", 2, "Messages sent by each participant")
	settle := flag.Duration("settle", 500*time.Millisecond, "Time left for connections and deliveries")
	level := flag.String("log", "WARN", "Log level")
	flag.Parse()

	mode, err := domain.ParseSessionMode(*modeFlag)
	if err != nil {
		return err
	}
	log := logs.GetLoggerFromString(*level)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := memory.NewHub(log)
	sessions := make([]*runtime.PeerSession, *peers)
	for i := range sessions {
		name := fmt.Sprintf("peer-%d", i+1)
		sessions[i] = runtime.NewPeerSession(log, hub.Endpoint(name), mode, name)
		if err := sessions[i].Create(ctx); err != nil {
			return err
		}
		defer sessions[i].Teardown()
	}

	sleep(ctx, *settle)
	if mode == domain.OneToOne {
		pairUp(sessions)
		sleep(ctx, *settle)
	}

	for round := 1; round <= *rounds; round++ {
		for _, s := range sessions {
			s.Send(fmt.Sprintf("message %d from %s", round, s.Snapshot().Local.DisplayName))
		}
	}
	sleep(ctx, *settle)

	report(sessions)
	return nil
}

// pairUp makes each idle session invite the first peer it can.
func pairUp(sessions []*runtime.PeerSession) {
	for _, s := range sessions {
		snapshot := s.Snapshot()
		if len(snapshot.Connected) > 0 || len(snapshot.Pending) > 0 {
			continue
		}
		if candidates := snapshot.Invitable(); len(candidates) > 0 {
			_ = s.Invite(candidates[0].ID)
			time.Sleep(50 * time.Millisecond)
		}
	}
}

func sleep(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

func report(sessions []*runtime.PeerSession) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Participant", "Status", "Connected", "Sent", "Received"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, s := range sessions {
		snapshot := s.Snapshot()
		sent := lo.CountBy(snapshot.Messages, func(m domain.Message) bool { return m.Local })
		names := lo.Map(snapshot.Connected, func(p domain.PeerIdentity, _ int) string { return p.DisplayName })
		table.Append([]string{
			snapshot.Local.DisplayName,
			snapshot.Status().String(),
			fmt.Sprintf("%v", names),
			strconv.Itoa(sent),
			strconv.Itoa(len(snapshot.Messages) - sent),
		})
	}
	table.Render()
	color.Green.Printf("%d sessions simulated\n", len(sessions))
}
