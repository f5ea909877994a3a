package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Natnat0905/GeoChat/internal/geometry"
	"github.com/Natnat0905/GeoChat/internal/llm"
	"github.com/Natnat0905/GeoChat/internal/render"
	"github.com/Natnat0905/GeoChat/internal/store"
	"github.com/Natnat0905/GeoChat/internal/tutor"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a single geometry question",
	Long: `Ask one question and print the answer. When the question requests a
drawing the diagram is written to a PNG file next to the answer.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		question := strings.Join(args, " ")

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
			return fmt.Errorf("LLM provider: %w", err)
		}

		svc := tutor.New(provider, geometry.New(logger), render.New(logger), tutor.DefaultConfig(), logger)

		start := time.Now()
		reply, err := svc.Answer(ctx, question)

		event := store.ChatEventData{
			RequestID:   uuid.NewString(),
			Channel:     "cli",
			UserMessage: question,
			LatencyMs:   time.Since(start).Milliseconds(),
		}
		if err != nil {
			event.ReplyType = "error"
			_ = eventRepo.AppendChat(ctx, event)
			return err
		}
		event.ReplyType = string(reply.Type)
		event.Shape = string(reply.Shape)
		_ = eventRepo.AppendChat(ctx, event)

		if reply.Type != tutor.ReplyVisual {
			fmt.Println(reply.Content)
			return nil
		}

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = fmt.Sprintf("%s-%s.png", reply.Shape, time.Now().Format("20060102-150405"))
		}
		if err := os.WriteFile(out, reply.PNG, 0o644); err != nil {
			return fmt.Errorf("write diagram: %w", err)
		}

		fmt.Println(reply.Explanation)
		fmt.Printf("\nDiagram saved to %s\n", out)
		return nil
	},
}

func init() {
	askCmd.Flags().StringP("out", "o", "", "Write the diagram PNG to this path")
}
