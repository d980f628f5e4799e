package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"go.coinshield.dev/wordcodec"
)

var valueTypes = []string{"u32", "u64", "double", "string"}

func newEncodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "encode <u32|u64|double|string> <value>",
		Short:     "Encode a value and print its bytes as hex",
		Args:      cobra.ExactArgs(2),
		ValidArgs: valueTypes,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := encodeValue(args[0], args[1])
			if err != nil {
				return err
			}
			a.log.Debug("encoded value", zap.String("type", args[0]), zap.Int("bytes", len(b)))
			fmt.Fprintln(cmd.OutOrStdout(), wordcodec.Hex.FromBytes(b))
			return nil
		},
	}
}

func encodeValue(kind, value string) ([]byte, error) {
	switch kind {
	case "u32":
		n, err := strconv.ParseUint(value, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid u32 %q: %w", value, err)
		}
		return wordcodec.EncodeUint32(uint32(n)), nil
	case "u64":
		n, err := strconv.ParseUint(value, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid u64 %q: %w", value, err)
		}
		return wordcodec.EncodeUint64(n), nil
	case "double":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid double %q: %w", value, err)
		}
		return wordcodec.EncodeDouble(f), nil
	case "string":
		return wordcodec.EncodeString(value), nil
	default:
		return nil, fmt.Errorf("unknown value type %q, want one of %v", kind, valueTypes)
	}
}

func newDecodeCmd(a *app) *cobra.Command {
	var (
		offset int
		strict bool
	)

	cmd := &cobra.Command{
		Use:       "decode <u32|u64|double|string> <hex>",
		Short:     "Decode hex bytes into a value",
		Args:      cobra.ExactArgs(2),
		ValidArgs: valueTypes,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := wordcodec.Hex.ToBytes(args[1])
			if err != nil {
				return fmt.Errorf("invalid hex input: %w", err)
			}
			policy := wordcodec.ZeroFill
			if strict {
				policy = wordcodec.Reject
			}
			a.log.Debug("decoding", zap.String("type", args[0]), zap.Int("offset", offset), zap.Stringer("policy", policy))

			out, err := decodeValue(args[0], b, offset, policy)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "byte offset to decode from")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on a short buffer instead of decoding 0")
	return cmd
}

func decodeValue(kind string, b []byte, offset int, policy wordcodec.ShortBufferPolicy) (string, error) {
	switch kind {
	case "u32":
		n, err := policy.Uint32(b, offset)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d (0x%08X)", n, n), nil
	case "u64":
		n, err := policy.Uint64(b, offset)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d (0x%016X)", n, n), nil
	case "double":
		f, err := policy.Double(b, offset)
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	case "string":
		return strconv.Quote(wordcodec.DecodeString(b, offset)), nil
	default:
		return "", fmt.Errorf("unknown value type %q, want one of %v", kind, valueTypes)
	}
}
