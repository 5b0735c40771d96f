package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nutrilog/internal/bot"
	"nutrilog/internal/config"
	"nutrilog/internal/repository"
	"nutrilog/internal/server"
	"nutrilog/internal/service"
	"nutrilog/internal/tmpl"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	dayRepo := repository.NewDayRepository(db)
	subscriberRepo := repository.NewSubscriberRepository(db)

	daySvc := service.NewDayService(dayRepo)
	exportSvc := service.NewExportService(dayRepo)
	summarySvc := service.NewSummaryService(dayRepo)

	templates, err := tmpl.Load("templates")
	if err != nil {
		log.Fatalf("templates: %v", err)
	}

	deps := &server.Deps{
		Days:      daySvc,
		Exports:   exportSvc,
		Templates: templates,
		StaticDir: "static",
	}

	if cfg.TelegramToken != "" {
		notifier, err := bot.New(cfg.TelegramToken, subscriberRepo, summarySvc, time.Local)
		if err != nil {
			log.Fatalf("bot: %v", err)
		}

		scheduler := service.NewSchedulerService(time.Local)
		if _, err := scheduler.ScheduleDaily(cfg.SummaryTime, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := notifier.SendDailySummaries(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("summary: %v", err)
			}
		}); err != nil {
			log.Fatalf("schedule summaries: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()

		go func() {
			if err := notifier.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("bot stopped with error: %v", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: deps.Router(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("[info] nutrilog listening on http://localhost%s", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server stopped with error: %v", err)
	}
	log.Println("Shutdown complete.")
}
