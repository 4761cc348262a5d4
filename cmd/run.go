package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goabroadai/goabroad/internal/app"
	"github.com/goabroadai/goabroad/internal/ui/markdown"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	rt, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	skipIntro, _ := cmd.Flags().GetBool("skip-intro")
	rt.logger.Info("starting TUI", zap.Int64("user_id", rt.session.UserID()))

	return app.Run(app.Options{
		Backend:     rt.client(),
		Session:     rt.session,
		Logger:      rt.logger,
		Renderer:    markdown.New("dark", 76),
		SkipWelcome: skipIntro,
	})
}
