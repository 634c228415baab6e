package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/NethermindEth/probe/account"
	"github.com/NethermindEth/probe/core"
	"github.com/NethermindEth/probe/core/crypto"
	"github.com/NethermindEth/probe/core/felt"
	"github.com/NethermindEth/probe/core/uint256"
	"github.com/spf13/cobra"
)

func toHexCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "to-hex DECIMAL",
		Aliases: []string{"th"},
		Short:   "Convert a decimal felt to hexadecimal.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := felt.Parse(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), f.String())
			return nil
		},
	}
}

func toDecCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "to-dec HEX",
		Aliases: []string{"td"},
		Short:   "Convert a hexadecimal felt to decimal.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := felt.Parse(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), f.Text(10))
			return nil
		},
	}
}

func maxFeltCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "max-felt",
		Aliases: []string{"mxf"},
		Short:   "Print the maximum felt value.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), felt.MaxFelt().Text(10))
			return nil
		},
	}
}

func maxSignedFeltCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "max-sfelt",
		Aliases: []string{"mxsf"},
		Short:   "Print the maximum signed felt value.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), felt.MaxSignedFelt)
			return nil
		},
	}
}

func minSignedFeltCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "min-sfelt",
		Aliases: []string{"mnsf"},
		Short:   "Print the minimum signed felt value.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), felt.MinSignedFelt)
			return nil
		},
	}
}

func fromASCIICmd() *cobra.Command {
	return &cobra.Command{
		Use:     "from-ascii TEXT",
		Aliases: []string{"fa"},
		Short:   "Encode an ASCII string as a Cairo short string felt.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := felt.EncodeShortString(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), f.String())
			return nil
		},
	}
}

func toASCIICmd() *cobra.Command {
	return &cobra.Command{
		Use:     "to-ascii SHORT_STRING",
		Aliases: []string{"ta"},
		Short:   "Decode a Cairo short string felt to ASCII.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := felt.Parse(args[0])
			if err != nil {
				return err
			}
			s, err := felt.DecodeShortString(f)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}
}

func splitU256Cmd() *cobra.Command {
	return &cobra.Command{
		Use:     "split-u256 VALUE",
		Aliases: []string{"su"},
		Short:   "Split a uint256 into its low and high felt components.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			high, low, err := uint256.Split(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "high: %s\nlow: %s\n", high, low)
			return nil
		},
	}
}

func keccakCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "keccak DATA",
		Aliases: []string{"kck"},
		Short:   "Hash data with Starknet keccak. A 0x prefix reads the argument as hex bytes, otherwise as text.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data := []byte(args[0])
			if rest, ok := strings.CutPrefix(args[0], "0x"); ok {
				var err error
				if data, err = hex.DecodeString(rest); err != nil {
					return err
				}
			}
			hash, err := crypto.StarknetKeccak(data)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash.String())
			return nil
		},
	}
}

func pedersenCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "pedersen X Y",
		Aliases: []string{"ped"},
		Short:   "Compute the Pedersen hash of two field elements.",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := parseFeltOrText(args[0])
			if err != nil {
				return err
			}
			y, err := parseFeltOrText(args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), crypto.Pedersen(x, y).String())
			return nil
		},
	}
}

func indexCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "index VAR_NAME [KEY...]",
		Aliases: []string{"idx"},
		Short:   "Compute the storage address of a contract storage variable.",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := parseFelts(args[1:])
			if err != nil {
				return err
			}
			address, err := core.StorageVarAddress(args[0], keys...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), address.String())
			return nil
		},
	}
}

func computeAddressCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "compute-address CALLER_ADDRESS SALT CLASS_HASH [CALLDATA...]",
		Aliases: []string{"ca"},
		Short:   "Compute a contract address from its deployment parameters.",
		Args:    cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			felts, err := parseFelts(args)
			if err != nil {
				return err
			}
			caller, salt, classHash := felts[0], felts[1], felts[2]
			address := core.ContractAddress(caller, classHash, salt, felts[3:])
			fmt.Fprintln(cmd.OutOrStdout(), address.String())
			return nil
		},
	}
}

func callArrayCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "call-array CALLS...",
		Aliases: []string{"gca"},
		Short:   "Generate __execute__ calldata from a hyphen-separated list of calls.",
		Long: `Generate __execute__ calldata from a hyphen-separated list of calls,
each of the form: <contract address> <function name> [<calldata>...]`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			calldata, err := account.MulticallCalldata(strings.Join(args, " "), crypto.Selector)
			if err != nil {
				return err
			}
			out := make([]string, len(calldata))
			for i, f := range calldata {
				out[i] = f.String()
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(out, " "))
			return nil
		},
	}
}

func parseFelts(args []string) ([]*felt.Felt, error) {
	felts := make([]*felt.Felt, len(args))
	for i, arg := range args {
		f, err := felt.Parse(arg)
		if err != nil {
			return nil, err
		}
		felts[i] = f
	}
	return felts, nil
}

// parseFeltOrText parses a hex or decimal felt, falling back to short-string
// encoding for plain text.
func parseFeltOrText(s string) (*felt.Felt, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return felt.ParseHex(s)
	}
	if f, err := felt.ParseDecimal(s); err == nil {
		return f, nil
	}
	return felt.EncodeShortString(s)
}
