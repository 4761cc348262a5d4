package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goabroadai/goabroad/internal/devserver"
	"github.com/goabroadai/goabroad/internal/llm"
)

var devserverCmd = &cobra.Command{
	Use:   "devserver",
	Short: "Run a local advisory backend",
	Long: `Run a local stand-in for the advisory backend on --addr.

Profiles are stored in the local database. Chat answers come from the LLM
provider named by GOABROAD_LLM_PROVIDER (with GOABROAD_LLM_API_KEY and
optionally GOABROAD_LLM_MODEL), or from the first of GEMINI_API_KEY,
OPENAI_API_KEY, ANTHROPIC_API_KEY or OPENROUTER_API_KEY found in the
environment. Without one, /chat/ask answers 503.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd, true)
		if err != nil {
			return err
		}
		defer rt.Close()

		addr := rt.cfg.DevAddr
		if v, _ := cmd.Flags().GetString("addr"); v != "" {
			addr = v
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		provider, llmCfg, err := llm.OpenFromEnv(ctx, rt.store.EventRepo(), rt.logger)
		switch {
		case errors.Is(err, llm.ErrNotConfigured):
			rt.logger.Warn("no LLM provider configured; chat is unavailable")
		case err != nil:
			return fmt.Errorf("LLM provider: %w", err)
		default:
			rt.logger.Info("LLM provider ready",
				zap.String("provider", llmCfg.Provider), zap.String("model", provider.ModelID()))
		}

		srv := devserver.New(devserver.Config{
			Profiles:  rt.store.ProfileRepo(),
			Provider:  provider,
			MaxTokens: llmCfg.MaxTokens,
			Logger:    rt.logger,
		})
		return srv.ListenAndServe(ctx, addr)
	},
}

func init() {
	devserverCmd.Flags().String("addr", "", "Listen address (default :8000, or GOABROAD_DEV_ADDR)")
}
