package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goabroadai/goabroad/internal/profile"
)

var submitCmd = &cobra.Command{
	Use:   "submit -f profile.yaml",
	Short: "Submit a profile from a YAML file",
	Long: `Submit a student profile without the interactive form.

The file uses the draft field names, for example:

  full_name: Rahim Uddin
  email: rahim@example.com
  preferred_countries: [Germany, Canada]
  preferred_intake: Fall 2026
  education:
    - level: HSC
      institution: Notre Dame College
      field: Science
      gpa: "5.00"
      year_completed: "2021"
  resume: ./cv.pdf

Unset fields keep the form defaults. On success the returned user id is
saved and used by later chat sessions.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		if path == "" {
			return errors.New("--file is required")
		}

		draft, err := profile.LoadDraftFile(path)
		if err != nil {
			return err
		}

		rt, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		submitter := profile.NewSubmitter(rt.client(), rt.session, rt.logger)
		out, err := submitter.Submit(cmd.Context(), draft)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out.Message)
		return nil
	},
}

func init() {
	submitCmd.Flags().StringP("file", "f", "", "YAML profile to submit")
}
