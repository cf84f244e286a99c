package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/greetloop/phoenix"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Inspect Phoenix projects",
}

var projectsJSON bool

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all Phoenix projects",
	RunE:  runProjectsList,
}

func init() {
	projectsListCmd.Flags().BoolVar(&projectsJSON, "json", false, "Emit the JSON payload")

	projectsCmd.AddCommand(projectsListCmd)
}

func runProjectsList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client := phoenix.New(cfg.PhoenixHost)
	projects, err := client.ListProjects(cmd.Context())

	if projectsJSON {
		payload := projectsPayload{Projects: []phoenix.Project{}}

		switch {
		case err != nil:
			payload.Message = err.Error()
		case len(projects) == 0:
			payload.Success = true
			payload.Message = "No projects found"
		default:
			payload.Success = true
			payload.Message = fmt.Sprintf("Found %d projects", len(projects))
			payload.Projects = projects
			payload.Count = len(projects)
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

	if len(projects) == 0 {
		fmt.Println("No projects found.")
		return nil
	}

	fmt.Printf("%-24s %8s %8s %8s  %-20s\n", "NAME", "TRACES", "RECORDS", "TOKENS", "CREATED")
	fmt.Println(strings.Repeat("-", 76))

	for _, p := range projects {
		fmt.Printf("%-24s %8d %8d %8d  %-20s\n",
			p.Name, p.TraceCount, p.RecordCount, p.TokenCountTotal, p.CreatedAt)
	}

	return nil
}
