package runner

import (
	"time"

	"digital.vasic.evaluator/pkg/assertion"
	"digital.vasic.evaluator/pkg/logging"
	"digital.vasic.evaluator/pkg/metrics"
	"digital.vasic.evaluator/pkg/monitor"
	"digital.vasic.evaluator/pkg/scenario"
)

// RunnerOption configures a DefaultRunner.
type RunnerOption func(*DefaultRunner)

// WithLogger sets the logger used by the runner. A nil logger
// disables logging.
func WithLogger(logger logging.Logger) RunnerOption {
	return func(r *DefaultRunner) {
		if logger == nil {
			logger = logging.NullLogger{}
		}
		r.logger = logger
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m metrics.Recorder) RunnerOption {
	return func(r *DefaultRunner) {
		if m == nil {
			m = metrics.NoopMetrics{}
		}
		r.metrics = m
	}
}

// WithCollector sets the event collector that receives
// scenario lifecycle events.
func WithCollector(c *monitor.EventCollector) RunnerOption {
	return func(r *DefaultRunner) {
		r.collector = c
	}
}

// WithEngine sets the assertion engine.
func WithEngine(e assertion.Engine) RunnerOption {
	return func(r *DefaultRunner) {
		r.engine = e
	}
}

// WithTimeout sets the per-scenario execution timeout.
func WithTimeout(timeout time.Duration) RunnerOption {
	return func(r *DefaultRunner) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// WithStrict makes an unexpected pass of an expected_failure
// scenario fail the suite.
func WithStrict(strict bool) RunnerOption {
	return func(r *DefaultRunner) {
		r.strict = strict
	}
}

// WithConfig applies the timeout and strictness of a run
// configuration.
func WithConfig(cfg *scenario.Config) RunnerOption {
	return func(r *DefaultRunner) {
		WithTimeout(cfg.Timeout)(r)
		r.strict = cfg.Strict
	}
}

// WithPreHook adds a pre-execution hook to the runner.
func WithPreHook(h Hook) RunnerOption {
	return func(r *DefaultRunner) {
		r.preHooks = append(r.preHooks, h)
	}
}

// WithPostHook adds a post-execution hook to the runner.
func WithPostHook(h Hook) RunnerOption {
	return func(r *DefaultRunner) {
		r.postHooks = append(r.postHooks, h)
	}
}

// WithEvaluatorFactory replaces how each scenario's Evaluator
// is built.
func WithEvaluatorFactory(f EvaluatorFactory) RunnerOption {
	return func(r *DefaultRunner) {
		r.newEvaluator = f
	}
}
