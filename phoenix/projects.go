package phoenix

import "context"

// Project summarizes one Phoenix project.
type Project struct {
	Name            string `json:"name"`
	ID              string `json:"id"`
	CreatedAt       string `json:"created_at"`
	TraceCount      int    `json:"trace_count"`
	RecordCount     int    `json:"record_count"`
	TokenCountTotal int    `json:"token_count_total"`
}

const projectsQuery = `
query GetProjects {
    projects {
        edges {
            node {
                id
                name
                createdAt
                traceCount
                recordCount
                tokenCountTotal
            }
        }
    }
}`

// ListProjects returns all projects known to the server.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var data struct {
		Projects struct {
			Edges []struct {
				Node struct {
					ID              string `json:"id"`
					Name            string `json:"name"`
					CreatedAt       string `json:"createdAt"`
					TraceCount      int    `json:"traceCount"`
					RecordCount     int    `json:"recordCount"`
					TokenCountTotal int    `json:"tokenCountTotal"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"projects"`
	}

	if err := c.do(ctx, projectsQuery, nil, &data); err != nil {
		return nil, err
	}

	projects := make([]Project, 0, len(data.Projects.Edges))
	for _, edge := range data.Projects.Edges {
		projects = append(projects, Project{
			Name:            edge.Node.Name,
			ID:              edge.Node.ID,
			CreatedAt:       edge.Node.CreatedAt,
			TraceCount:      edge.Node.TraceCount,
			RecordCount:     edge.Node.RecordCount,
			TokenCountTotal: edge.Node.TokenCountTotal,
		})
	}

	return projects, nil
}

// resolveProject looks up a project by name. The single projects query also
// carries the trace counts DeleteTraces needs, saving a round trip.
func (c *Client) resolveProject(ctx context.Context, name string) (Project, error) {
	projects, err := c.ListProjects(ctx)
	if err != nil {
		return Project{}, err
	}

	for _, p := range projects {
		if p.Name == name {
			return p, nil
		}
	}

	return Project{}, &ProjectNotFoundError{Project: name}
}
