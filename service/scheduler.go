package service

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

var filmScheduler gocron.Scheduler

// StartFilmArchiveScheduler runs the auto-archive sweep daily at 00:05 local
// festival time.
func StartFilmArchiveScheduler(films *FilmService) {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.FixedZone("ICT", 7*3600)),
	)
	if err != nil {
		log.Fatal(err)
	}

	filmScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 5, 0),
			),
		),
		gocron.NewTask(func() {
			log.Println("[CRON] ArchiveEndedFilms triggered")
			films.ArchiveEndedFilms(context.Background())
		}),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("Film archive scheduler started (00:05 ICT)")
}

func StopFilmArchiveScheduler() {
	if filmScheduler != nil {
		if err := filmScheduler.Shutdown(); err != nil {
			log.Printf("film archive scheduler shutdown: %v", err)
		}
	}
}
