package runqueue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"triagesim/config"
	"triagesim/database/repository/resultstore"
	"triagesim/eventlog"
	"triagesim/kernel"
	"triagesim/models"
	"triagesim/observability"
	"triagesim/pathway"
	"triagesim/scenario"

	"github.com/hibiken/asynq"
)

// StartWorker runs the asynq worker in the background, retrying server
// startup up to five times with a linearly growing backoff (2s, 4s, 6s, 8s)
// the way the reminder worker this is grounded on does.
func StartWorker(cfg config.Config, store resultstore.ResultStore, limiter *RunLimiter) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}

	concurrency := cfg.WorkerConcurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeRunScenario, handleRunTask(store, limiter))

	go func() {
		log.Println("[RunQueue] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[RunQueue] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)
				if attempts == maxAttempts {
					log.Fatal("[RunQueue] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleRunTask(store resultstore.ResultStore, limiter *RunLimiter) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
		}

		var cfg models.RunConfig
		if err := json.Unmarshal(task.Payload(), &cfg); err != nil {
			log.Printf("[RunQueue] invalid payload: %v", err)
			return err
		}

		runLog := observability.RunLogger(cfg.RunID)
		runLog.Infow("run started", "run_length", cfg.RunLength, "annual_demand", cfg.AnnualDemand)

		result, err := RunScenario(cfg)
		if err != nil {
			runLog.Errorw("run failed", "error", err)
			return err
		}

		if store != nil {
			if err := store.SaveRun(ctx, result); err != nil {
				runLog.Errorw("failed to persist run", "error", err)
				return err
			}
		}
		runLog.Infow("run persisted", "retained_patients", len(result.WaitOverall))
		return nil
	}
}

// RunScenario builds a Scenario from cfg, drives it through the kernel, and
// summarises the output into a RunResult. Shared by the worker handler and
// any synchronous (non-queued) caller such as the CLI.
func RunScenario(cfg models.RunConfig) (*models.RunResult, error) {
	scen, err := scenario.New(cfg)
	if err != nil {
		return nil, err
	}

	out := kernel.Run(scen, pathway.Execute)

	summary := eventlog.Summarise(dereferencePatients(out.Patients), scen.WarmUp)
	bookings, available := scen.Slice(scen.WarmUp, scen.RunLength)

	return &models.RunResult{
		RunID:       cfg.RunID,
		Events:      out.Log.Events(),
		Bookings:    bookings,
		Available:   available,
		WaitOverall: summary.Overall,
		WaitLow:     summary.Low,
		WaitHigh:    summary.High,
	}, nil
}

func dereferencePatients(patients []*models.Patient) []models.Patient {
	out := make([]models.Patient, len(patients))
	for i, p := range patients {
		out[i] = *p
	}
	return out
}
