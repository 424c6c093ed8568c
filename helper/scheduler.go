package helper

import (
	"booking_manager/model"
	"booking_manager/monitoring"
	"context"
	"log"

	"github.com/go-co-op/gocron/v2"
	"github.com/robfig/cron/v3"
)

// StartReclaimScheduler sweeps expired pending bookings once a minute. Purely
// an optimization: lazy reclamation on read stays authoritative, so observable
// behavior is unchanged with the sweep off.
func StartReclaimScheduler(manager *BookingManager) *cron.Cron {
	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))
	c.AddFunc("@every 1m", func() {
		n, err := manager.ReclaimExpired(context.Background())
		if err != nil {
			log.Printf("expired booking sweep failed: %v", err)
			return
		}
		if n > 0 {
			monitoring.ExpiredReclaimed.Add(float64(n))
			log.Printf("expired booking sweep reclaimed %d bookings", n)
		}
	})
	c.Start()
	return c
}

// StartSheetResyncScheduler re-pushes every completed booking to the
// spreadsheet once a day, repairing rows lost to swallowed sync failures.
func StartSheetResyncScheduler(store BookingStore, sheet SheetSyncer) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(3, 0, 0))),
		gocron.NewTask(func() {
			ctx := context.Background()
			bookings, err := store.ListAll(ctx)
			if err != nil {
				log.Printf("sheet resync: list failed: %v", err)
				return
			}
			for _, b := range bookings {
				if b.PaymentStatus != model.StatusCompleted && b.PaymentStatus != model.StatusRefunded {
					continue
				}
				if err := sheet.UpsertBooking(ctx, b); err != nil {
					monitoring.SheetSyncFailures.Inc()
					log.Printf("sheet resync: booking %s: %v", b.ID, err)
				}
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	s.Start()
	return s, nil
}
