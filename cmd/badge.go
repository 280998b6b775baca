package cmd

import (
	"github.com/spf13/cobra"

	"github.com/spiffcs/widgets/internal/badge"
	"github.com/spiffcs/widgets/internal/widget"
)

// NewCmdBadge creates the badge command.
func NewCmdBadge(opts *Options) *cobra.Command {
	var size, at string
	var english bool

	cmd := &cobra.Command{
		Use:   "badge",
		Short: "Show the lock screen date badge",
		Long:  `Shows today's date as the lock screen badge, e.g. "10月14号 周三".`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := newEnv(cmd, opts)
			if err != nil {
				return err
			}
			now, err := parseAt(at)
			if err != nil {
				return err
			}
			s, err := widget.ParseSize(size)
			if err != nil {
				return err
			}
			text := badge.Text(now)
			if english {
				text = badge.TextEN(now)
			}
			return e.surface.Present(e.out, s, widget.Widget{Text: text})
		},
	}

	cmd.Flags().StringVar(&size, "size", widget.SizeAccessoryInline.String(), "Widget size")
	cmd.Flags().StringVar(&at, "at", "", "Show this date (YYYY-MM-DD) instead of today")
	cmd.Flags().BoolVar(&english, "en", false, "Use English month and weekday names")

	return cmd
}
