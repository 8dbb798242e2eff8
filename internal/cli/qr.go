package cli

import (
	"os"

	"github.com/spf13/cobra"

	imagepkg "github.com/youruser/cardsheet/internal/image"
	"github.com/youruser/cardsheet/internal/util"
)

func (c *CLI) qrCommand() *cobra.Command {
	var (
		out  string
		size int
	)
	cmd := &cobra.Command{
		Use:     "qr TEXT",
		Short:   "Write a QR code PNG",
		Example: `  cardsheet qr "https://example.com/decks/42" -o deck-qr.png`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := imagepkg.GenerateQRPNG(args[0], size)
			if err != nil {
				return err
			}
			f, err := util.CreateFile(out)
			if err != nil {
				return err
			}
			if _, err := f.Write(b); err != nil {
				f.Close()
				os.Remove(out)
				return err
			}
			c.Logger.Info("wrote QR code", "out", out, "size", size)
			return f.Close()
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "qr.png", "output PNG path")
	cmd.Flags().IntVar(&size, "size", 400, "image size in pixels")
	return cmd
}
