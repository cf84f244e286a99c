package phoenix

import (
	"context"
	"fmt"
)

// Trace summarizes one trace of a project, taken from its first-seen span.
type Trace struct {
	TraceID         string  `json:"trace_id"`
	FirstSpanName   string  `json:"first_span_name"`
	StartTime       string  `json:"start_time"`
	LatencyMs       float64 `json:"latency_ms"`
	TokenCountTotal int     `json:"token_count_total"`
	StatusCode      string  `json:"status_code"`
}

const tracesQueryFmt = `
query GetTraces {
    project(id: %q) {
        spans%s {
            edges {
                node {
                    id
                    context {
                        traceId
                    }
                    name
                    statusCode
                    startTime
                    endTime
                    latencyMs
                    tokenCountTotal
                    tokenCountPrompt
                    tokenCountCompletion
                }
            }
        }
    }
}`

const clearProjectMutation = `
mutation ClearProject($input: ClearProjectInput!) {
    clearProject(input: $input) {
        __typename
    }
}`

// ListTraces returns the traces of the named project, grouping the project's
// spans by trace id in first-seen order. A limit > 0 caps the number of spans
// fetched, not the number of traces.
func (c *Client) ListTraces(ctx context.Context, project string, limit int) ([]Trace, error) {
	p, err := c.resolveProject(ctx, project)
	if err != nil {
		return nil, err
	}

	spansArgs := ""
	if limit > 0 {
		spansArgs = fmt.Sprintf("(first: %d)", limit)
	}

	var data struct {
		Project struct {
			Spans struct {
				Edges []struct {
					Node struct {
						ID      string `json:"id"`
						Context struct {
							TraceID string `json:"traceId"`
						} `json:"context"`
						Name            string  `json:"name"`
						StatusCode      string  `json:"statusCode"`
						StartTime       string  `json:"startTime"`
						EndTime         string  `json:"endTime"`
						LatencyMs       float64 `json:"latencyMs"`
						TokenCountTotal int     `json:"tokenCountTotal"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"spans"`
		} `json:"project"`
	}

	query := fmt.Sprintf(tracesQueryFmt, p.ID, spansArgs)
	if err := c.do(ctx, query, nil, &data); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	traces := make([]Trace, 0, len(data.Project.Spans.Edges))

	for _, edge := range data.Project.Spans.Edges {
		node := edge.Node
		traceID := node.Context.TraceID

		if traceID == "" || seen[traceID] {
			continue
		}
		seen[traceID] = true

		traces = append(traces, Trace{
			TraceID:         traceID,
			FirstSpanName:   node.Name,
			StartTime:       node.StartTime,
			LatencyMs:       node.LatencyMs,
			TokenCountTotal: node.TokenCountTotal,
			StatusCode:      node.StatusCode,
		})
	}

	return traces, nil
}

// DeleteTraces clears all traces from the named project while keeping the
// project itself, returning the number of traces that existed before the
// clear. A project without traces is left untouched.
func (c *Client) DeleteTraces(ctx context.Context, project string) (int, error) {
	p, err := c.resolveProject(ctx, project)
	if err != nil {
		return 0, err
	}

	if p.TraceCount == 0 {
		return 0, nil
	}

	var data struct {
		ClearProject struct {
			Typename string `json:"__typename"`
		} `json:"clearProject"`
	}

	variables := map[string]any{
		"input": map[string]any{"id": p.ID},
	}
	if err := c.do(ctx, clearProjectMutation, variables, &data); err != nil {
		return 0, err
	}

	return p.TraceCount, nil
}
