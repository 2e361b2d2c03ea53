package job

import (
	"context"
	"log"
	"time"

	"equity-radar/internal/ml/training"

	"go.opentelemetry.io/otel/trace"
)

type Trainer interface {
	Train(ctx context.Context) (*training.Result, error)
}

// RetrainJob retrains the direction model once a day at a fixed UTC hour.
type RetrainJob struct {
	tracer    trace.Tracer
	service   Trainer
	trainHour int
}

func NewRetrainJob(tracer trace.Tracer, service Trainer, trainHourUTC int) *RetrainJob {
	if trainHourUTC < 0 || trainHourUTC > 23 {
		trainHourUTC = 0
	}
	return &RetrainJob{tracer: tracer, service: service, trainHour: trainHourUTC}
}

func (j *RetrainJob) Start(ctx context.Context) {
	if j.service == nil {
		log.Println("retrain job disabled: no training service")
		<-ctx.Done()
		return
	}
	for {
		next := nextRunUTC(time.Now().UTC(), j.trainHour)
		wait := time.Until(next)
		if wait < time.Second {
			wait = time.Second
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			j.runOnce(ctx)
		}
	}
}

func (j *RetrainJob) runOnce(ctx context.Context) {
	_, span := j.tracer.Start(ctx, "retrain-job.run-once")
	defer span.End()

	result, err := j.service.Train(ctx)
	if err != nil {
		log.Printf("retrain error: %v", err)
		return
	}
	log.Printf("retrain complete version=%d samples=%d accuracy=%.4f", result.Version, result.SampleCount, result.Accuracy)
}

func nextRunUTC(now time.Time, hour int) time.Time {
	run := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, time.UTC)
	if !run.After(now) {
		run = run.Add(24 * time.Hour)
	}
	return run
}
