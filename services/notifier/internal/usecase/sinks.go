package usecase

import (
	"campus-hub/pkg/logger"
	"campus-hub/pkg/metrics"
	"campus-hub/services/notifier/internal/entity"
)

// LogSink writes one structured line per dispatch.
type LogSink struct {
	logger *logger.Logger
}

func NewLogSink(log *logger.Logger) *LogSink {
	return &LogSink{logger: log}
}

func (s *LogSink) Record(r entity.DispatchResult) {
	log := s.logger.
		With("collection", r.Collection).
		With("document_id", r.DocumentID).
		With("outcome", string(r.Outcome))

	switch r.Outcome {
	case entity.OutcomeSent:
		if r.Mode == entity.ModeBroadcast {
			log.Zerolog().Info().
				Int("targeted", r.Targeted).
				Int("success_count", r.SuccessCount).
				Int("failure_count", r.FailureCount).
				Msgf("Successfully sent %d notifications", r.SuccessCount)
		} else {
			log.Info("Successfully sent notification: %s", r.MessageID)
		}
	case entity.OutcomeSkipped:
		switch r.Reason {
		case entity.ReasonNoTokens:
			log.Info("No FCM tokens found")
		case entity.ReasonUserNotFound:
			log.Warn("User not found: %s", r.UserID)
		case entity.ReasonNoToken:
			log.Info("No FCM token for user: %s", r.UserID)
		case entity.ReasonUnknownCollection:
			log.Warn("No notification category for collection %s", r.Collection)
		default:
			log.Info("Notification skipped: %s", r.Reason)
		}
	case entity.OutcomeDuplicate:
		log.Info("Notification already dispatched, skipping")
	case entity.OutcomeFailed:
		log.Error("Error sending %s notification: %v", r.Collection, r.Err)
	}
}

// MetricsSink feeds dispatch results to the Prometheus recorder.
type MetricsSink struct {
	recorder *metrics.Recorder
}

func NewMetricsSink(recorder *metrics.Recorder) *MetricsSink {
	return &MetricsSink{recorder: recorder}
}

func (s *MetricsSink) Record(r entity.DispatchResult) {
	s.recorder.ObserveDispatch(r.Collection, string(r.Outcome), r.Mode == entity.ModeBroadcast, r.Targeted, r.SuccessCount, r.FailureCount)
}
