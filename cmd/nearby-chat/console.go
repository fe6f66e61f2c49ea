package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"nearby-chat/contract"
	"nearby-chat/domain"
	"nearby-chat/errors"
	"nearby-chat/projection"
	"strings"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

// console is the terminal front of a session: it prints every change and
// turns typed lines into messages or commands.
type console struct {
	out      io.Writer
	session  contract.IPeerSession
	timeline *projection.Timeline
}

func newConsole(out io.Writer, session contract.IPeerSession, owner string) *console {
	return &console{out: out, session: session, timeline: projection.NewTimeline(owner)}
}

func (c *console) render(updates <-chan domain.Snapshot) {
	for snapshot := range updates {
		c.print(snapshot, c.timeline.Apply(snapshot))
	}
}

func (c *console) print(snapshot domain.Snapshot, change projection.Change) {
	if change.StatusChanged {
		fmt.Fprintln(c.out, color.Bold.Sprintf("[%s] %s", snapshot.Mode, change.Status))
	}
	for _, p := range change.Joined {
		fmt.Fprintln(c.out, color.Green.Sprintf("+ %s joined", p.DisplayName))
	}
	for _, p := range change.Left {
		fmt.Fprintln(c.out, color.Red.Sprintf("- %s left", p.DisplayName))
	}
	if snapshot.ShowDiscovery() {
		for _, p := range change.Appeared {
			fmt.Fprintln(c.out, color.Gray.Sprintf("  %s is nearby, type /invite %s", p.DisplayName, p.DisplayName))
		}
	}
	for _, m := range change.Messages {
		at := m.At.Format("15:04")
		if m.Local {
			fmt.Fprintf(c.out, "%s %s\n", color.Gray.Sprint(at), color.Cyan.Sprintf("me: %s", m.Text))
			continue
		}
		fmt.Fprintf(c.out, "%s %s %s\n", color.Gray.Sprint(at), color.Yellow.Sprintf("%s:", m.Sender), m.Text)
	}
}

// readInput runs until in is exhausted, ctx is done or the user quits.
func (c *console) readInput(ctx context.Context, in io.Reader, quit func()) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		if !c.handle(scanner.Text()) {
			quit()
			return
		}
	}
	quit()
}

// handle returns false once the user asked to leave.
func (c *console) handle(line string) bool {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	switch cmd {
	case "/quit", "/exit":
		return false
	case "/peers":
		c.printPeers(c.session.Snapshot())
	case "/invite":
		if err := c.invite(strings.TrimSpace(arg)); err != nil {
			fmt.Fprintln(c.out, color.Red.Sprint(err))
		}
	case "/help":
		fmt.Fprintln(c.out, "/peers, /invite <name|id>, /quit; anything else is sent to the room")
	default:
		c.session.Send(line)
	}
	return true
}

func (c *console) invite(arg string) error {
	peer, err := resolvePeer(c.session.Snapshot(), arg)
	if err != nil {
		return err
	}
	return c.session.Invite(peer.ID)
}

// resolvePeer finds a visible peer by exact id, then by case-insensitive display name.
func resolvePeer(snapshot domain.Snapshot, arg string) (domain.PeerIdentity, error) {
	if arg == "" {
		return domain.PeerIdentity{}, fmt.Errorf("%w: no peer given", errors.ErrUnknownPeer)
	}
	if p, ok := lo.Find(snapshot.Discovered, func(p domain.PeerIdentity) bool { return string(p.ID) == arg }); ok {
		return p, nil
	}
	named := lo.Filter(snapshot.Discovered, func(p domain.PeerIdentity, _ int) bool {
		return strings.EqualFold(p.DisplayName, arg)
	})
	switch len(named) {
	case 0:
		return domain.PeerIdentity{}, fmt.Errorf("%w: %s", errors.ErrUnknownPeer, arg)
	case 1:
		return named[0], nil
	default:
		return domain.PeerIdentity{}, fmt.Errorf("%d peers are named %s, use the id", len(named), arg)
	}
}

func (c *console) printPeers(snapshot domain.Snapshot) {
	table := tablewriter.NewWriter(c.out)
	table.SetHeader([]string{"Name", "ID", "State"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)

	seen := map[domain.PeerID]bool{}
	add := func(p domain.PeerIdentity) {
		if seen[p.ID] {
			return
		}
		seen[p.ID] = true
		state := "visible"
		if s, ok := snapshot.StateOf(p.ID); ok {
			state = s.String()
		}
		table.Append([]string{p.DisplayName, shortID(p.ID), state})
	}
	lo.ForEach(snapshot.Connected, func(p domain.PeerIdentity, _ int) { add(p) })
	lo.ForEach(snapshot.Pending, func(p domain.PeerIdentity, _ int) { add(p) })
	lo.ForEach(snapshot.Discovered, func(p domain.PeerIdentity, _ int) { add(p) })
	table.Render()
	fmt.Fprintf(c.out, "%d/%d connected\n", len(snapshot.Connected), snapshot.Mode.Capacity())
}

func shortID(id domain.PeerID) string {
	if len(id) > 8 {
		return string(id[:8])
	}
	return string(id)
}
