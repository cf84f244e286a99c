package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/hupe1980/greetloop/capability"
	"github.com/hupe1980/greetloop/conversation"
	"github.com/hupe1980/greetloop/logging"
)

// requestExecutor executes a batch of capability requests, possibly in
// parallel, and returns exactly one result message per request in request
// order. It must:
//   - Respect ctx cancellation
//   - Never panic (recover internally into marker results)
//   - Keep failures local: lookup, decode and execution errors become marker
//     content, never round aborts
type requestExecutor struct {
	registry    *capability.Registry
	maxParallel int // 0 or <1 => no explicit limit (len(reqs))
	logger      logging.Logger
}

// Execute runs one round's requests and returns the ordered result messages.
// observe is invoked once per completed execution, from the executing
// goroutine. Requests skipped due to cancellation produce no result; the
// following model call surfaces the ctx error to the caller.
func (e *requestExecutor) Execute(
	ctx context.Context,
	round int,
	reqs []conversation.CapabilityRequest,
	observe func(CapabilityCall),
) []conversation.Message {
	n := len(reqs)
	if n == 0 {
		return nil
	}

	// Fast path: single request, execute inline.
	if n == 1 {
		msg := e.run(ctx, round, reqs[0], observe)
		return []conversation.Message{msg}
	}

	maxPar := e.maxParallel
	if maxPar <= 0 || maxPar > n {
		maxPar = n
	}

	results := make([]conversation.Message, n)
	var wg sync.WaitGroup

	sem := make(chan struct{}, maxPar)

	batchStart := time.Now()
	for i := range reqs {
		if ctx.Err() != nil { // pre-check cancellation
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int, req conversation.CapabilityRequest) {
			defer wg.Done()
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}

			results[idx] = e.run(ctx, round, req, observe)
		}(i, reqs[i])
	}

	wg.Wait()

	ordered := make([]conversation.Message, 0, n)
	for i := 0; i < n; i++ {
		if results[i].ID == "" { // skipped by cancellation
			continue
		}
		ordered = append(ordered, results[i])
	}

	e.logger.Debug(
		"agent.capabilities.batch.complete",
		"round", round,
		"count", n,
		"parallelism", maxPar,
		"duration_ms", time.Since(batchStart).Milliseconds(),
	)

	return ordered
}

// run executes a single request with panic safety and produces its result
// message plus the observation record.
func (e *requestExecutor) run(
	ctx context.Context,
	round int,
	req conversation.CapabilityRequest,
	observe func(CapabilityCall),
) conversation.Message {
	e.logger.Debug("agent.capability.start", "capability", req.Name, "request_id", req.ID)

	start := time.Now()
	var (
		content string
		err     error
	)
	func() { // panic safety
		defer func() {
			if r := recover(); r != nil {
				err = panicError(r)
				content = "Error: " + err.Error()
				e.logger.Error("agent.capability.panic", "capability", req.Name, "recover", r)
			}
		}()
		content, err = e.executeRequest(ctx, req)
	}()
	dur := time.Since(start)

	e.logger.Info(
		"agent.capability.executed",
		"capability", req.Name,
		"duration_ms", dur.Milliseconds(),
		"error", err != nil,
	)

	if observe != nil {
		observe(CapabilityCall{
			Round:    round,
			Request:  req,
			Result:   content,
			Err:      err,
			Start:    start,
			Duration: dur,
		})
	}

	return conversation.NewCapabilityResultMessage(req.ID, req.Name, content)
}

// executeRequest resolves and runs one request, returning the result content
// for the log. Failures come back as marker content plus the error for
// observers; they never abort the round.
func (e *requestExecutor) executeRequest(ctx context.Context, req conversation.CapabilityRequest) (string, error) {
	impl, ok := e.registry.Lookup(req.Name)
	if !ok {
		return fmt.Sprintf("Error: Capability '%s' not found", req.Name),
			fmt.Errorf("capability '%s' not found", req.Name)
	}

	args := map[string]any{}
	if req.Arguments != "" {
		if err := json.Unmarshal([]byte(req.Arguments), &args); err != nil {
			werr := fmt.Errorf("failed to unmarshal args: %w", err)
			return "Error: " + werr.Error(), werr
		}
	}

	result, err := impl.Call(ctx, args)
	if err != nil {
		return "Error: " + err.Error(), err
	}

	return result, nil
}

// panicError converts a recovered panic value to an error without pulling external dependencies.
func panicError(r any) error { return &panicErr{val: r, stack: debug.Stack()} }

type panicErr struct {
	val   any
	stack []byte
}

func (p *panicErr) Error() string { return "panic recovered" }
