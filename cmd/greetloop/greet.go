package main

import (
	"context"
	"fmt"
	"time"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/spf13/cobra"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/hupe1980/greetloop"
	"github.com/hupe1980/greetloop/config"
	"github.com/hupe1980/greetloop/conversation"
	"github.com/hupe1980/greetloop/model"
	"github.com/hupe1980/greetloop/model/anthropic"
	"github.com/hupe1980/greetloop/model/openai"
	"github.com/hupe1980/greetloop/tracing"
)

const defaultPrompt = "Say hello to Alice in English"

var (
	greetProvider  string
	greetModel     string
	greetProject   string
	greetMaxRounds int
	greetNoTrace   bool
)

var greetCmd = &cobra.Command{
	Use:   "greet [prompt]",
	Short: "Run one greeting conversation through the agent",
	Long: `Runs a single greeting conversation. The model must call the per-language
greeting capabilities; their results and the final reply are printed. Without
--no-trace the run is exported to Phoenix as one trace.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGreet,
}

func init() {
	greetCmd.Flags().StringVar(&greetProvider, "provider", "", "Model provider (openai or anthropic)")
	greetCmd.Flags().StringVar(&greetModel, "model", "", "Model name override")
	greetCmd.Flags().StringVar(&greetProject, "project", "", "Phoenix project receiving the traces")
	greetCmd.Flags().IntVar(&greetMaxRounds, "max-rounds", 0, "Round budget for the conversation")
	greetCmd.Flags().BoolVar(&greetNoTrace, "no-trace", false, "Disable Phoenix tracing")
}

func runGreet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if greetProvider != "" {
		cfg.Provider = greetProvider
	}
	if greetModel != "" {
		cfg.Model = greetModel
	}
	if greetProject != "" {
		cfg.Project = greetProject
	}
	if greetMaxRounds > 0 {
		cfg.MaxRounds = greetMaxRounds
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	m, err := newModel(cfg)
	if err != nil {
		return err
	}

	prompt := defaultPrompt
	if len(args) > 0 {
		prompt = args[0]
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	var tp *sdktrace.TracerProvider
	if !greetNoTrace {
		tp, err = tracing.Setup(ctx, tracing.Config{
			Endpoint: cfg.CollectorEndpoint,
			Project:  cfg.Project,
		})
		if err != nil {
			return fmt.Errorf("setup tracing: %w", err)
		}

		defer func() {
			// Flush on a fresh context; the run context may already be done.
			flushCtx, flushCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer flushCancel()

			if err := tp.Shutdown(flushCtx); err != nil {
				logger.Warn("trace flush failed", "error", err.Error())
			}
		}()

		fmt.Printf("Tracing to %s (project %s)\n\n", cfg.CollectorEndpoint, cfg.Project)
	}

	greeter := greetloop.New(m, func(o *greetloop.Options) {
		o.MaxRounds = cfg.MaxRounds
		o.Logger = logger
		if tp != nil {
			o.TracerProvider = tp
		}
	})

	fmt.Printf("Prompt: %s\n", prompt)

	msgs, err := greeter.Run(ctx, prompt)
	if err != nil {
		return err
	}

	for _, msg := range msgs {
		switch {
		case msg.Role == conversation.RoleCapabilityResult:
			fmt.Printf("  [%s] %s\n", msg.CapabilityName, msg.Content)
		case msg.IsFinal() && msg.Content != "":
			fmt.Printf("\n%s\n", msg.Content)
		}
	}

	if tp != nil {
		fmt.Printf("\nView traces at: %s (project %s)\n", cfg.PhoenixHost, cfg.Project)
	}

	return nil
}

// newModel builds the provider adapter the conversation runs against. API
// keys reach the SDKs through the environment config.Load populated.
func newModel(cfg config.Config) (model.Model, error) {
	switch cfg.Provider {
	case "openai":
		return openai.NewModel(func(o *openai.Options) {
			if cfg.Model != "" {
				o.Model = cfg.Model
			}
		}), nil
	case "anthropic":
		return anthropic.NewModel(func(o *anthropic.Options) {
			if cfg.Model != "" {
				o.Model = anthropicsdk.Model(cfg.Model)
			}
			o.APIKey = cfg.AnthropicAPIKey
		}), nil
	default:
		return nil, fmt.Errorf("unknown provider: %q (use openai or anthropic)", cfg.Provider)
	}
}
