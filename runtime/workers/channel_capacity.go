package workers

import (
	"context"
	"fmt"
	"log/slog"
	"nearby-chat/contract"
	"reflect"
	"time"
)

var _ contract.Worker = (*ChannelCapacityWorker)(nil)

type NamedChannel struct {
	Name    string
	Channel any
}

// ChannelCapacity is one sample of a buffered channel.
type ChannelCapacity struct {
	Name     string
	Capacity int
	Length   int
}

// Left returns the free slots; unbuffered channels report -1.
func (c ChannelCapacity) Left() int {
	if c.Capacity <= 0 {
		return -1
	}
	return c.Capacity - c.Length
}

// ChannelCapacityWorker periodically samples the session channels and warns
// when one is close to full, which means peers will soon see dropped commands
// or skipped snapshots. Reading len and cap never blocks.
type ChannelCapacityWorker struct {
	log                  *slog.Logger
	channels             []NamedChannel
	metricInterval       time.Duration
	lowCapacityThreshold int
}

func NewChannelCapacityWorker(log *slog.Logger, channels []NamedChannel,
	metricInterval time.Duration, lowCapacityThreshold int) *ChannelCapacityWorker {
	return &ChannelCapacityWorker{
		log:                  log,
		channels:             channels,
		metricInterval:       metricInterval,
		lowCapacityThreshold: lowCapacityThreshold,
	}
}

func (w *ChannelCapacityWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping channel sampling")
			return nil
		case <-ticker.C:
			for _, sample := range w.Sample() {
				w.report(sample)
			}
		}
	}
}

// Sample reads the current usage of every named channel.
func (w *ChannelCapacityWorker) Sample() []ChannelCapacity {
	samples := make([]ChannelCapacity, 0, len(w.channels))
	for _, nc := range w.channels {
		v := reflect.ValueOf(nc.Channel)
		// Verify if this is a channel
		if v.Kind() != reflect.Chan {
			w.log.Error("Provided object is not a channel", "name", nc.Name)
			continue
		}
		samples = append(samples, ChannelCapacity{Name: nc.Name, Capacity: v.Cap(), Length: v.Len()})
	}
	return samples
}

func (w *ChannelCapacityWorker) report(sample ChannelCapacity) {
	w.log.Debug(fmt.Sprintf("Channel %s usage: %d / %d", sample.Name, sample.Length, sample.Capacity))
	left := sample.Left()
	if left >= 0 && left <= w.lowCapacityThreshold {
		w.log.Warn(fmt.Sprintf("Channel %s capacity left : %d", sample.Name, left))
	}
}
