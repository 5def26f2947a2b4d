package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// scheduleCleanup runs the visitor cleanup on schedule until ctx is done.
func (s *server) scheduleCleanup(ctx context.Context, schedule string) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger)))
	_, err := c.AddFunc(schedule, func() {
		jobCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()
		s.cleanupVisitors(jobCtx)
	})
	if err != nil {
		return nil, fmt.Errorf("scheduling cleanup %q: %w", schedule, err)
	}

	c.Start()
	log.Printf("Privacy cleanup scheduled: %s (retention %s)", schedule, s.cfg.VisitorRetention)

	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
	}()
	return c, nil
}
