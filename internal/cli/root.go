package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cv-builder/internal/cv"
)

// ErrInvalid is returned by validate when the résumé has findings.
var ErrInvalid = errors.New("resume has validation issues")

// NewRootCmd builds the cvctl command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cvctl",
		Short:         "Validate, render and import résumé data files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newValidateCmd(), newRenderCmd(), newImportCmd())
	return root
}

func readResume(path string) (cv.Resume, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return cv.Resume{}, err
	}
	var r cv.Resume
	if err := json.Unmarshal(raw, &r); err != nil {
		return cv.Resume{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return r, nil
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <cv-data.json>",
		Short: "Report advisory issues in a résumé data file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := readResume(args[0])
			if err != nil {
				return err
			}
			issues, err := cv.Validate(r)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(issues) == 0 {
				fmt.Fprintln(out, "ok")
				return nil
			}
			for _, is := range issues {
				fmt.Fprintf(out, "%s\t%s\t%s\n", is.Field, is.Rule, is.Message)
			}
			return fmt.Errorf("%w: %d found", ErrInvalid, len(issues))
		},
	}
}
