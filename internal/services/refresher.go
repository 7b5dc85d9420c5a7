package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Refresher keeps the live-match cache warm on the match-TTL cadence so
// polling clients stay on the cache-hit path. It is optional; with it
// disabled the first poll after expiry pays for the refresh instead.
type Refresher struct {
	matches   *MatchService
	players   *PlayerService
	cron      *cron.Cron
	interval  time.Duration
	logger    *logrus.Logger
	mu        sync.Mutex
	isRunning bool
}

func NewRefresher(matches *MatchService, players *PlayerService, interval time.Duration, logger *logrus.Logger) *Refresher {
	return &Refresher{
		matches:  matches,
		players:  players,
		cron:     cron.New(),
		interval: interval,
		logger:   logger,
	}
}

// Start schedules the periodic warm and runs an initial one in the
// background.
func (r *Refresher) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isRunning {
		return fmt.Errorf("refresher is already running")
	}

	schedule := fmt.Sprintf("@every %s", r.interval.String())
	if _, err := r.cron.AddFunc(schedule, r.warmMatches); err != nil {
		return fmt.Errorf("failed to schedule refresher: %w", err)
	}

	r.cron.Start()
	r.isRunning = true

	go func() {
		r.warmRoster()
		r.warmMatches()
	}()

	r.logger.Info("Background refresher started")
	return nil
}

// Stop halts the schedule and waits for a running job to finish.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isRunning {
		return
	}

	ctx := r.cron.Stop()
	<-ctx.Done()

	r.isRunning = false
	r.logger.Info("Background refresher stopped")
}

func (r *Refresher) warmMatches() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	snap, hit := r.matches.LiveMatches(ctx)
	if !hit {
		r.logger.Debugf("Warmed match cache: %d matches (origin %s)", len(snap.Matches), snap.Origin)
	}
}

func (r *Refresher) warmRoster() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	snap, _ := r.players.Players(ctx)
	r.logger.Infof("Roster ready: %d players (origin %s)", len(snap.Players), snap.Origin)
}
