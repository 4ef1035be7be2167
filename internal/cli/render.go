package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cv-builder/internal/bootstrap"
	"cv-builder/internal/render"
)

func newRenderCmd() *cobra.Command {
	var (
		format string
		lang   string
		output string
	)
	cmd := &cobra.Command{
		Use:   "render <cv-data.json>",
		Short: "Render a résumé data file as standalone HTML or DOCX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := readResume(args[0])
			if err != nil {
				return err
			}
			renderer, err := bootstrap.NewRenderer(lang)
			if err != nil {
				return err
			}

			var out []byte
			switch strings.ToLower(format) {
			case "html":
				out, err = renderer.Standalone(r, lang)
			case "docx":
				labels, _ := renderer.Labels(lang)
				out, err = render.DOCX(r, labels)
			default:
				return fmt.Errorf("unsupported format %q (want html or docx)", format)
			}
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			if err := os.WriteFile(output, out, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d bytes)\n", output, len(out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "html", "output format: html or docx")
	cmd.Flags().StringVar(&lang, "lang", "en", "label language")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout when empty)")
	return cmd
}
