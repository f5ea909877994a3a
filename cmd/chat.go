package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Natnat0905/GeoChat/internal/app"
	"github.com/Natnat0905/GeoChat/internal/geometry"
	"github.com/Natnat0905/GeoChat/internal/llm"
	"github.com/Natnat0905/GeoChat/internal/render"
	"github.com/Natnat0905/GeoChat/internal/store"
	"github.com/Natnat0905/GeoChat/internal/tutor"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd)
	},
}

// runChat opens the store, builds the tutor, and launches the TUI. Loggers
// stay nil here: log lines would tear the alternate screen.
func runChat(cmd *cobra.Command) error {
	ctx := cmd.Context()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	eventRepo := st.EventRepo()
	provider, err := llm.NewProviderFromEnv(ctx, eventRepo)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Set GEOCHAT_LLM_PROVIDER or a provider API key variable and retry.")
		return err
	}

	svc := tutor.New(provider, geometry.New(nil), render.New(nil), tutor.DefaultConfig(), nil)

	return app.Run(app.Deps{
		Tutor:       svc,
		Events:      eventRepo,
		DiagramsDir: diagramsDir(),
		ModelID:     provider.ModelID(),
	})
}

// diagramsDir is where the chat screen writes rendered figures.
func diagramsDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return "diagrams"
	}
	return filepath.Join(wd, "diagrams")
}
