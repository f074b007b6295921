// Package runner provides the scenario execution engine. It
// supports single, sequential and parallel execution with a
// per-scenario timeout, lifecycle hooks, metrics and live
// events.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"digital.vasic.evaluator/pkg/assertion"
	"digital.vasic.evaluator/pkg/evaluator"
	"digital.vasic.evaluator/pkg/logging"
	"digital.vasic.evaluator/pkg/metrics"
	"digital.vasic.evaluator/pkg/monitor"
	"digital.vasic.evaluator/pkg/scenario"
)

// Runner defines the interface for scenario execution.
type Runner interface {
	// Run executes a single scenario.
	Run(
		ctx context.Context,
		def *scenario.Definition,
	) (*scenario.Result, error)

	// RunAll executes the scenarios one after another in the
	// given order.
	RunAll(
		ctx context.Context,
		defs []*scenario.Definition,
	) ([]*scenario.Result, error)

	// RunParallel executes the scenarios concurrently with the
	// given concurrency limit. Results keep the input order.
	RunParallel(
		ctx context.Context,
		defs []*scenario.Definition,
		maxConcurrency int,
	) ([]*scenario.Result, error)
}

// Hook is a function invoked before or after scenario
// execution.
type Hook func(ctx context.Context, def *scenario.Definition) error

// EvaluatorFactory builds the Evaluator used for one scenario.
// out receives anything the operation reports.
type EvaluatorFactory func(out io.Writer) *evaluator.Evaluator

// DefaultRunner is the standard Runner implementation. It is
// safe for concurrent use.
type DefaultRunner struct {
	engine       assertion.Engine
	logger       logging.Logger
	metrics      metrics.Recorder
	collector    *monitor.EventCollector
	timeout      time.Duration
	strict       bool
	preHooks     []Hook
	postHooks    []Hook
	newEvaluator EvaluatorFactory
	active       atomic.Int32
}

// NewRunner creates a DefaultRunner with the supplied options.
func NewRunner(opts ...RunnerOption) *DefaultRunner {
	r := &DefaultRunner{
		engine:  assertion.NewEngine(),
		logger:  logging.NullLogger{},
		metrics: metrics.NoopMetrics{},
		timeout: 5 * time.Second,
		newEvaluator: func(out io.Writer) *evaluator.Evaluator {
			return evaluator.New(evaluator.WithOutput(out))
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Strict reports whether an unexpected pass fails the suite.
func (r *DefaultRunner) Strict() bool {
	return r.strict
}

// Run executes a single scenario. The returned error is
// non-nil only when ctx is already done; scenario failures are
// reported through the result status.
func (r *DefaultRunner) Run(
	ctx context.Context,
	def *scenario.Definition,
) (*scenario.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.executeScenario(ctx, def), nil
}

// RunAll executes scenarios in order. It stops early when ctx
// is cancelled and returns the results gathered so far.
func (r *DefaultRunner) RunAll(
	ctx context.Context,
	defs []*scenario.Definition,
) ([]*scenario.Result, error) {
	results := make([]*scenario.Result, 0, len(defs))
	for _, def := range defs {
		if err := ctx.Err(); err != nil {
			return results, fmt.Errorf(
				"run interrupted before %s: %w", def.ID, err,
			)
		}
		results = append(results, r.executeScenario(ctx, def))
	}
	return results, nil
}

// RunParallel executes scenarios concurrently using at most
// maxConcurrency goroutines.
func (r *DefaultRunner) RunParallel(
	ctx context.Context,
	defs []*scenario.Definition,
	maxConcurrency int,
) ([]*scenario.Result, error) {
	return runParallel(ctx, r, defs, maxConcurrency)
}

// outcome is what a single operation call produced.
type outcome struct {
	value any
	err   error
}

// executeScenario runs a single scenario through its full
// lifecycle: marker check -> validate -> pre-hooks -> execute
// with timeout -> evaluate assertions -> apply marker ->
// post-hooks -> metrics and events.
func (r *DefaultRunner) executeScenario(
	ctx context.Context,
	def *scenario.Definition,
) *scenario.Result {
	result := &scenario.Result{
		ScenarioID:   def.ID,
		ScenarioName: def.DisplayName(),
		Status:       scenario.StatusRunning,
		Marker:       def.Marker,
		Reason:       def.Reason,
		StartTime:    time.Now(),
		Outputs:      make(map[string]string),
	}
	log := r.logger.WithFields(
		logging.ScenarioField(string(def.ID)),
	)
	r.metrics.IncrementRunTotal()

	if def.Marker == scenario.MarkerSkip {
		result.Status = scenario.StatusSkipped
		result.Finish()
		log.Info("scenario_skipped",
			logging.StringField("reason", def.Reason),
		)
		r.record(def, result)
		return result
	}

	if err := def.Validate(); err != nil {
		return r.fail(log, def, result, fmt.Sprintf(
			"invalid scenario: %v", err,
		))
	}

	if r.collector != nil {
		r.collector.EmitStarted(def)
	}
	log.Info("scenario_started",
		logging.StringField("scenario_name", result.ScenarioName),
		logging.CallField(def.Operation, def.Args),
	)

	for _, hook := range r.preHooks {
		if err := hook(ctx, def); err != nil {
			return r.fail(log, def, result, fmt.Sprintf(
				"pre-hook failed: %v", err,
			))
		}
	}

	r.metrics.SetActive(int(r.active.Add(1)))
	var out bytes.Buffer
	o, execErr := r.execute(ctx, def, &out)
	r.metrics.SetActive(int(r.active.Add(-1)))

	switch {
	case errors.Is(execErr, context.DeadlineExceeded):
		result.Status = scenario.StatusTimedOut
		result.Error = fmt.Sprintf(
			"scenario execution timed out after %v", r.timeout,
		)
		result.Finish()
		log.Warn("scenario_timeout",
			logging.DurationField(
				"timeout_seconds", r.timeout.Seconds(),
			),
		)
		r.record(def, result)
		return result
	case execErr != nil:
		return r.fail(log, def, result, fmt.Sprintf(
			"execution failed: %v", execErr,
		))
	}

	values := map[string]any{
		scenario.TargetResult: o.value,
		scenario.TargetError:  evaluator.ErrorKind(o.err),
		scenario.TargetOutput: out.String(),
	}
	for k, v := range values {
		if v != nil {
			result.Outputs[k] = fmt.Sprint(v)
		}
	}

	assertions := def.AllAssertions()
	result.Assertions = r.engine.EvaluateAll(assertions, values)
	for _, a := range result.Assertions {
		r.metrics.RecordAssertion(string(def.ID), a.Type, a.Passed)
	}

	result.Status = scenario.StatusPassed
	if !result.AllPassed() {
		result.Status = scenario.StatusFailed
	}
	if o.err != nil && !checksError(assertions) {
		result.Status = scenario.StatusFailed
		result.Error = fmt.Sprintf("unexpected error: %v", o.err)
	}
	applyMarker(result)
	result.Finish()

	for _, hook := range r.postHooks {
		if err := hook(ctx, def); err != nil {
			log.Warn("post_hook_warning", logging.ErrorField(err))
		}
	}

	log.Info("scenario_completed",
		logging.StatusField(result.Status),
		logging.DurationField(
			"duration_seconds", result.Duration.Seconds(),
		),
	)
	r.record(def, result)
	return result
}

// execute calls the operation on its own goroutine so the
// timeout can be enforced. A panic inside the operation is
// returned as an error.
func (r *DefaultRunner) execute(
	ctx context.Context,
	def *scenario.Definition,
	out io.Writer,
) (outcome, error) {
	execCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	ev := r.newEvaluator(out)
	done := make(chan outcome, 1)
	panicked := make(chan any, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				panicked <- p
			}
		}()
		v, err := ev.Apply(def.Operation, def.Args...)
		done <- outcome{value: v, err: err}
	}()

	select {
	case o := <-done:
		return o, nil
	case p := <-panicked:
		return outcome{}, fmt.Errorf("panic: %v", p)
	case <-execCtx.Done():
		return outcome{}, execCtx.Err()
	}
}

// fail finishes result with StatusError.
func (r *DefaultRunner) fail(
	log logging.Logger,
	def *scenario.Definition,
	result *scenario.Result,
	msg string,
) *scenario.Result {
	result.Status = scenario.StatusError
	result.Error = msg
	result.Finish()
	log.Error("scenario_error", logging.StringField("error", msg))
	r.record(def, result)
	return result
}

func (r *DefaultRunner) record(
	def *scenario.Definition,
	result *scenario.Result,
) {
	r.metrics.RecordExecution(
		string(def.ID), result.Status, result.Duration,
	)
	if r.collector != nil {
		r.collector.EmitResult(def, result)
	}
}

// applyMarker reinterprets a pass or failure of a scenario
// marked expected_failure.
func applyMarker(result *scenario.Result) {
	if result.Marker != scenario.MarkerExpectedFailure {
		return
	}
	switch result.Status {
	case scenario.StatusFailed:
		result.Status = scenario.StatusXFail
	case scenario.StatusPassed:
		result.Status = scenario.StatusXPass
	}
}

// checksError reports whether any assertion inspects the error
// value.
func checksError(defs []assertion.Definition) bool {
	for _, d := range defs {
		target := d.Target
		if target == "" {
			target = assertion.DefaultTarget(d.Type)
		}
		if target == scenario.TargetError {
			return true
		}
	}
	return false
}
