package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/greetloop/phoenix"
)

var tracesCmd = &cobra.Command{
	Use:   "traces",
	Short: "Inspect and clear Phoenix traces",
}

var (
	tracesListProject string
	tracesListLimit   int
	tracesListJSON    bool
)

var tracesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List traces from a Phoenix project",
	RunE:  runTracesList,
}

var (
	tracesDeleteProject string
	tracesDeleteConfirm bool
	tracesDeleteJSON    bool
)

var tracesDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete all traces from a Phoenix project",
	Long: `Clears every trace from the project while keeping the project itself.
Prompts for confirmation unless --confirm is set; --json requires --confirm
since it is meant for scripted use.`,
	RunE: runTracesDelete,
}

func init() {
	tracesListCmd.Flags().StringVar(&tracesListProject, "project", "", "Project name")
	tracesListCmd.Flags().IntVar(&tracesListLimit, "limit", 0, "Maximum number of spans to fetch (0 fetches all)")
	tracesListCmd.Flags().BoolVar(&tracesListJSON, "json", false, "Emit the JSON payload")
	_ = tracesListCmd.MarkFlagRequired("project")

	tracesDeleteCmd.Flags().StringVar(&tracesDeleteProject, "project", "", "Project name")
	tracesDeleteCmd.Flags().BoolVar(&tracesDeleteConfirm, "confirm", false, "Skip the confirmation prompt")
	tracesDeleteCmd.Flags().BoolVar(&tracesDeleteJSON, "json", false, "Emit the JSON payload")
	_ = tracesDeleteCmd.MarkFlagRequired("project")

	tracesCmd.AddCommand(tracesListCmd)
	tracesCmd.AddCommand(tracesDeleteCmd)
}

func runTracesList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client := phoenix.New(cfg.PhoenixHost)
	traces, err := client.ListTraces(cmd.Context(), tracesListProject, tracesListLimit)

	if tracesListJSON {
		payload := tracesPayload{Traces: []phoenix.Trace{}, Project: tracesListProject}

		switch {
		case err != nil:
			payload.Message = err.Error()
		case len(traces) == 0:
			payload.Success = true
			payload.Message = fmt.Sprintf("No traces found in project '%s'", tracesListProject)
		default:
			payload.Success = true
			payload.Message = fmt.Sprintf("Found %d traces in project '%s'", len(traces), tracesListProject)
			payload.Traces = traces
			payload.Count = len(traces)
		}

		if perr := printJSON(payload); perr != nil {
			return perr
		}
		if err != nil {
			return errAlreadyReported
		}

		return nil
	}

	if err != nil {
		return err
	}

	if len(traces) == 0 {
		fmt.Printf("No traces found in project '%s'.\n", tracesListProject)
		return nil
	}

	fmt.Printf("%-34s %-20s %-8s %10s %8s  %-20s\n",
		"TRACE ID", "FIRST SPAN", "STATUS", "LATENCY MS", "TOKENS", "START")
	fmt.Println(strings.Repeat("-", 108))

	for _, tr := range traces {
		fmt.Printf("%-34s %-20s %-8s %10.1f %8d  %-20s\n",
			tr.TraceID, tr.FirstSpanName, tr.StatusCode, tr.LatencyMs, tr.TokenCountTotal, tr.StartTime)
	}

	return nil
}

func runTracesDelete(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if !tracesDeleteConfirm {
		if tracesDeleteJSON {
			return fmt.Errorf("refusing to delete traces without --confirm in --json mode")
		}

		ok, err := confirmPrompt(fmt.Sprintf("Delete all traces from project '%s'? [y/N]: ", tracesDeleteProject))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	client := phoenix.New(cfg.PhoenixHost)
	deleted, err := client.DeleteTraces(cmd.Context(), tracesDeleteProject)

	if tracesDeleteJSON {
		payload := deletePayload{Project: tracesDeleteProject}

		switch {
		case err != nil:
			payload.Message = err.Error()
		case deleted == 0:
			payload.Success = true
			payload.Message = fmt.Sprintf("No traces found in project '%s'", tracesDeleteProject)
		default:
			payload.Success = true
			payload.Message = fmt.Sprintf("Successfully deleted %d traces from project '%s'", deleted, tracesDeleteProject)
			payload.DeletedCount = deleted
		}

		if perr := printJSON(payload); perr != nil {
			return perr
		}
		if err != nil {
			return errAlreadyReported
		}

		return nil
	}

	if err != nil {
		return err
	}

	if deleted == 0 {
		fmt.Printf("No traces found in project '%s'.\n", tracesDeleteProject)
		return nil
	}

	fmt.Printf("Deleted %d traces from project '%s'.\n", deleted, tracesDeleteProject)

	return nil
}
