package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goabroadai/goabroad/internal/advisor"
	"github.com/goabroadai/goabroad/internal/chat"
	"github.com/goabroadai/goabroad/internal/screens/home"
	"github.com/goabroadai/goabroad/internal/ui/markdown"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the advisor one question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		conv := chat.New(rt.session)
		reply, err := conv.Send(cmd.Context(), rt.client(), strings.Join(args, " "))
		switch {
		case errors.Is(err, chat.ErrNoIdentity):
			return errors.New(home.MsgNoProfile + " Run `goabroad submit` or open the app.")
		case errors.Is(err, chat.ErrEmptyQuestion):
			return errors.New("question is empty")
		}

		plain, _ := cmd.Flags().GetBool("plain")
		out := reply.Content
		if !plain {
			out = markdown.New("dark", 80).Render(out)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return askFailure(err)
	},
}

// askFailure adds a next step to errors the user can act on. A 404 means the
// backend no longer knows the stored user id.
func askFailure(err error) error {
	if advisor.IsNotFound(err) {
		return fmt.Errorf("%w. Your profile was not found; run `goabroad submit` to submit it again", err)
	}
	return err
}

func init() {
	askCmd.Flags().Bool("plain", false, "Print the raw Markdown reply")
}
