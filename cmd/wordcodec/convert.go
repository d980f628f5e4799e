package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"go.coinshield.dev/wordcodec"
)

func newConvertCmd(a *app) *cobra.Command {
	var fromBits, toBits int

	cmd := &cobra.Command{
		Use:   "convert <hex>",
		Short: "Bridge a signed hex value from sign-magnitude to signed-size words and back",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, n := range []int{fromBits, toBits} {
				if n != wordcodec.Word32 && n != wordcodec.Word64 {
					return fmt.Errorf("word width must be 32 or 64, got %d", n)
				}
			}

			src := wordcodec.NewSignMag(wordcodec.WithWordBits(fromBits))
			if err := src.SetHex(args[0]); err != nil {
				return err
			}
			dst := wordcodec.NewSignedSize(wordcodec.WithWordBits(toBits))
			if err := wordcodec.ConvertAToB(src, dst); err != nil {
				return err
			}

			back := wordcodec.NewSignMag(wordcodec.WithWordBits(fromBits))
			if err := wordcodec.ConvertBToA(dst, back); err != nil {
				return err
			}
			if back.Hex() != src.Hex() {
				return fmt.Errorf("round trip mismatch: %s != %s", back.Hex(), src.Hex())
			}

			path := "fast"
			if fromBits != toBits {
				path = "slow"
			}
			a.log.Debug("converted value", zap.String("path", path), zap.Int("size", dst.Size()))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "path:  %s\n", path)
			fmt.Fprintf(out, "value: %s\n", dst.Hex())
			fmt.Fprintf(out, "size:  %d\n", dst.Size())
			fmt.Fprintf(out, "words: %s\n", formatWordList(dst))
			return nil
		},
	}

	cmd.Flags().IntVar(&fromBits, "from-bits", wordcodec.Word64, "word width of the sign-magnitude source")
	cmd.Flags().IntVar(&toBits, "to-bits", wordcodec.Word64, "word width of the signed-size destination")
	return cmd
}

// formatWordList renders the words least significant first.
func formatWordList(b *wordcodec.SignedSize) string {
	if b.Len() == 0 {
		return "[]"
	}
	digits := b.WordBits() / 4
	parts := make([]string, b.Len())
	for i := range parts {
		parts[i] = fmt.Sprintf("%0*x", digits, b.Word(i))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
