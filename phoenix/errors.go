package phoenix

import "fmt"

// ProjectNotFoundError indicates no Phoenix project carries the requested
// name. Error strings mirror the server-facing tool output so CLI messages
// stay stable.
type ProjectNotFoundError struct {
	Project string
}

func (e *ProjectNotFoundError) Error() string {
	return fmt.Sprintf("Project '%s' not found", e.Project)
}

// StatusError reports a non-200 reply from the Phoenix server.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error %d: %s", e.Code, e.Body)
}

// GraphQLError carries the first entry of a GraphQL errors array.
type GraphQLError struct {
	Message string
}

func (e *GraphQLError) Error() string {
	return fmt.Sprintf("GraphQL error: %s", e.Message)
}
