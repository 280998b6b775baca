package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spiffcs/widgets/internal/log"
	"github.com/spiffcs/widgets/internal/overlay"
)

// NewCmdOverlay creates the overlay command.
func NewCmdOverlay(opts *Options) *cobra.Command {
	var out string
	o := overlay.Options{}

	cmd := &cobra.Command{
		Use:   "overlay",
		Short: "Draw the transparent wallpaper overlay",
		Long: `Draws the wallpaper overlay and prints it as a base64 encoded PNG.

Use --out to write the PNG to a file instead. Canvas and text settings come
from the overlay section of the config; flags override them.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := newEnv(cmd, opts)
			if err != nil {
				return err
			}

			final := e.cfg.GetOverlayOptions()
			flags := cmd.Flags()
			if flags.Changed("width") {
				final.Width = o.Width
			}
			if flags.Changed("height") {
				final.Height = o.Height
			}
			if flags.Changed("scale") {
				final.Scale = o.Scale
			}
			if flags.Changed("accent") {
				final.Accent = o.Accent
			}
			if flags.Changed("alpha") {
				final.Alpha = o.Alpha
			}
			if flags.Changed("font") {
				final.FontPath = o.FontPath
			}

			img, err := overlay.Render(final, timeNow())
			if err != nil {
				return err
			}

			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", out, err)
				}
				if err := overlay.WritePNG(f, img); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
				log.Info("overlay written", "path", out)
				fmt.Fprintf(e.out, "Saved %s\n", out)
				return nil
			}

			encoded, err := overlay.EncodeBase64(img)
			if err != nil {
				return err
			}
			fmt.Fprintln(e.out, encoded)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Write the PNG to this file instead of printing base64")
	cmd.Flags().IntVar(&o.Width, "width", 0, "Canvas width in pixels")
	cmd.Flags().IntVar(&o.Height, "height", 0, "Canvas height in pixels")
	cmd.Flags().Float64Var(&o.Scale, "scale", 0, "Device pixel scale (text sizes are designed for 3)")
	cmd.Flags().StringVar(&o.Accent, "accent", "", "Symbol color as #RRGGBB")
	cmd.Flags().Float64Var(&o.Alpha, "alpha", 0, "Symbol opacity from 0 to 1")
	cmd.Flags().StringVar(&o.FontPath, "font", "", "TTF font file (default: embedded Go Regular)")

	return cmd
}
