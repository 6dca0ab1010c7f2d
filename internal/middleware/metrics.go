package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quorum_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// AnswersSubmitted counts answers accepted for the active question.
	AnswersSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quorum_answers_submitted_total",
		Help: "Total number of answers submitted",
	})

	// LikesToggled counts like toggles by resulting state.
	LikesToggled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quorum_likes_toggled_total",
		Help: "Total number of like toggles by resulting state",
	}, []string{"state"})

	// QuestionActivations counts successful question activations.
	QuestionActivations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quorum_question_activations_total",
		Help: "Total number of question activations",
	})
)

// InitMetrics creates the Prometheus middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the Fiber handler that records per-request metrics.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
