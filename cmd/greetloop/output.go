package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/hupe1980/greetloop/phoenix"
)

// Payload shapes for the --json outputs. Field order and names follow the
// agent-facing tool contract consumers already parse.

type projectsPayload struct {
	Success  bool              `json:"success"`
	Message  string            `json:"message"`
	Projects []phoenix.Project `json:"projects"`
	Count    int               `json:"count"`
}

type tracesPayload struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Traces  []phoenix.Trace `json:"traces"`
	Count   int             `json:"count"`
	Project string          `json:"project"`
}

type deletePayload struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	DeletedCount int    `json:"deleted_count"`
	Project      string `json:"project"`
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}

	fmt.Println(string(out))

	return nil
}

// confirmPrompt asks a yes/no question on stdout and reads the answer from
// stdin. Only "y" and "yes" count as consent.
func confirmPrompt(question string) (bool, error) {
	fmt.Print(question)

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("read confirmation: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(line))

	return answer == "y" || answer == "yes", nil
}
