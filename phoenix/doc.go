// Package phoenix is a thin client for the Phoenix trace store's GraphQL
// API.
//
// It covers the three maintenance operations the CLI exposes: listing
// projects, listing the traces of a project, and clearing a project's traces
// while keeping the project itself. Responses are reshaped into flat structs;
// everything else is a direct request/response pass-through.
package phoenix
