// Package model defines the provider-agnostic abstraction for the model
// invocation boundary of greetloop.
//
// Core goals:
//   - One-shot generation: one Request in, one assistant message out
//   - Normalized capability schema representation (CapabilityDefinition)
//   - Keep request shapes minimal and transport independent
//   - Facilitate scripted mocking for tests (Mock)
//
// Providers (e.g. OpenAI, Anthropic) implement the Model interface from this
// package so the agent loop remains decoupled from vendor SDKs.
package model
