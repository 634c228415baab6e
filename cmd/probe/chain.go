package main

import (
	"fmt"
	"strings"

	"github.com/NethermindEth/probe/core/felt"
	"github.com/NethermindEth/probe/probe"
	"github.com/NethermindEth/probe/rpc"
	"github.com/spf13/cobra"
)

// probeFn builds the query layer lazily so offline commands never touch the
// RPC configuration.
type probeFn func() (*probe.Probe, error)

const blockIDUsage = "The hash of the requested block, or number (height) of the requested block, or a block tag (e.g. latest, pending)."

func blockIDArg(args []string) (rpc.BlockID, error) {
	if len(args) == 0 {
		return rpc.LatestBlockID(), nil
	}
	return rpc.ParseBlockID(args[0])
}

func blockCmd(newProbe probeFn) *cobra.Command {
	var full, toJSON bool
	var field string

	cmd := &cobra.Command{
		Use:     "block [BLOCK_ID]",
		Aliases: []string{"b"},
		Short:   "Get information about a block.",
		Long:    "Get information about a block. " + blockIDUsage,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blockID, err := blockIDArg(args)
			if err != nil {
				return err
			}
			p, err := newProbe()
			if err != nil {
				return err
			}
			out, err := p.Block(cmd.Context(), blockID, full, field, toJSON)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "Get the full information (incl. transactions) of the block.")
	cmd.Flags().StringVar(&field, "field", "", "Display a single block field.")
	cmd.Flags().BoolVarP(&toJSON, "json", "j", false, "Display the block as JSON.")
	return cmd
}

func blockNumberCmd(newProbe probeFn) *cobra.Command {
	return &cobra.Command{
		Use:     "block-number",
		Aliases: []string{"bn"},
		Short:   "Get the latest block number.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := newProbe()
			if err != nil {
				return err
			}
			number, err := p.BlockNumber(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), number)
			return nil
		},
	}
}

func chainIDCmd(newProbe probeFn) *cobra.Command {
	return &cobra.Command{
		Use:     "chain-id",
		Aliases: []string{"ci"},
		Short:   "Get the Starknet chain ID.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := newProbe()
			if err != nil {
				return err
			}
			id, err := p.ChainID(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}

func transactionCmd(newProbe probeFn) *cobra.Command {
	var field string

	cmd := &cobra.Command{
		Use:   "tx TX_HASH",
		Short: "Get information about a transaction.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := felt.Parse(args[0])
			if err != nil {
				return err
			}
			p, err := newProbe()
			if err != nil {
				return err
			}
			out, err := p.Transaction(cmd.Context(), hash, field)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&field, "field", "", "Display a single transaction field.")
	return cmd
}

func receiptCmd(newProbe probeFn) *cobra.Command {
	var field string

	cmd := &cobra.Command{
		Use:     "receipt TX_HASH",
		Aliases: []string{"rct"},
		Short:   "Get the receipt of a transaction.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := felt.Parse(args[0])
			if err != nil {
				return err
			}
			p, err := newProbe()
			if err != nil {
				return err
			}
			out, err := p.Receipt(cmd.Context(), hash, field)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&field, "field", "", "Display a single receipt field.")
	return cmd
}

func transactionCountCmd(newProbe probeFn) *cobra.Command {
	return &cobra.Command{
		Use:     "tx-count [BLOCK_ID]",
		Aliases: []string{"txc"},
		Short:   "Get the number of transactions in a block.",
		Long:    "Get the number of transactions in a block. " + blockIDUsage,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blockID, err := blockIDArg(args)
			if err != nil {
				return err
			}
			p, err := newProbe()
			if err != nil {
				return err
			}
			count, err := p.BlockTransactionCount(cmd.Context(), blockID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), count)
			return nil
		},
	}
}

func nonceCmd(newProbe probeFn) *cobra.Command {
	return &cobra.Command{
		Use:     "nonce CONTRACT_ADDRESS [BLOCK_ID]",
		Aliases: []string{"n1"},
		Short:   "Get the latest nonce associated with the address.",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			contract, err := felt.Parse(args[0])
			if err != nil {
				return err
			}
			blockID, err := blockIDArg(args[1:])
			if err != nil {
				return err
			}
			p, err := newProbe()
			if err != nil {
				return err
			}
			nonce, err := p.Nonce(cmd.Context(), blockID, contract)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), nonce)
			return nil
		},
	}
}

func storageCmd(newProbe probeFn) *cobra.Command {
	var block string

	cmd := &cobra.Command{
		Use:     "storage CONTRACT_ADDRESS INDEX",
		Aliases: []string{"str"},
		Short:   "Get the value of a contract's storage at the given index.",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			contract, err := felt.Parse(args[0])
			if err != nil {
				return err
			}
			key, err := felt.Parse(args[1])
			if err != nil {
				return err
			}
			blockID, err := rpc.ParseBlockID(block)
			if err != nil {
				return err
			}
			p, err := newProbe()
			if err != nil {
				return err
			}
			value, err := p.StorageAt(cmd.Context(), contract, key, blockID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}

	cmd.Flags().StringVarP(&block, "block", "b", "latest", blockIDUsage)
	return cmd
}

func callCmd(newProbe probeFn) *cobra.Command {
	var block string
	var input []string

	cmd := &cobra.Command{
		Use:   "call CONTRACT_ADDRESS FUNCTION_NAME",
		Short: "Call a Starknet function without creating a transaction.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			contract, err := felt.Parse(args[0])
			if err != nil {
				return err
			}
			calldata, err := parseFelts(input)
			if err != nil {
				return err
			}
			blockID, err := rpc.ParseBlockID(block)
			if err != nil {
				return err
			}
			p, err := newProbe()
			if err != nil {
				return err
			}
			out, err := p.CallFunc(cmd.Context(), contract, args[1], calldata, blockID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&input, "input", "i", nil, "Comma separated calldata values e.g., 0x12345,0x69420,...")
	cmd.Flags().StringVarP(&block, "block", "b", "latest", blockIDUsage)
	return cmd
}

func balanceCmd(newProbe probeFn) *cobra.Command {
	var block string

	cmd := &cobra.Command{
		Use:     "balance ADDRESS",
		Aliases: []string{"bal"},
		Short:   "Get the ETH balance of an address.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			address, err := felt.Parse(args[0])
			if err != nil {
				return err
			}
			blockID, err := rpc.ParseBlockID(block)
			if err != nil {
				return err
			}
			p, err := newProbe()
			if err != nil {
				return err
			}
			balance, err := p.Balance(cmd.Context(), address, blockID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), balance)
			return nil
		},
	}

	cmd.Flags().StringVarP(&block, "block", "b", "latest", blockIDUsage)
	return cmd
}

func eventsCmd(newProbe probeFn) *cobra.Command {
	var from, fromBlock, toBlock, continuationToken string
	var keys []string
	var chunkSize uint64

	cmd := &cobra.Command{
		Use:     "events",
		Aliases: []string{"ev"},
		Short:   "Get all events matching the given filter.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := rpc.EventFilter{
				ChunkSize:         chunkSize,
				ContinuationToken: continuationToken,
			}
			if from != "" {
				address, err := felt.Parse(from)
				if err != nil {
					return err
				}
				filter.Address = address
			}
			if fromBlock != "" {
				blockID, err := rpc.ParseBlockID(fromBlock)
				if err != nil {
					return err
				}
				filter.FromBlock = &blockID
			}
			if toBlock != "" {
				blockID, err := rpc.ParseBlockID(toBlock)
				if err != nil {
					return err
				}
				filter.ToBlock = &blockID
			}
			for _, position := range keys {
				alternatives, err := parseFelts(strings.Split(position, ","))
				if err != nil {
					return err
				}
				filter.Keys = append(filter.Keys, alternatives)
			}

			p, err := newProbe()
			if err != nil {
				return err
			}
			out, err := p.Events(cmd.Context(), filter)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&from, "from", "C", "", "Address of the contract emitting the events.")
	cmd.Flags().StringArrayVarP(&keys, "keys", "k", nil,
		"Event keys to filter on, one flag per key position, comma separated alternatives e.g., 0x12345,0x69420")
	cmd.Flags().StringVarP(&fromBlock, "from-block", "f", "", blockIDUsage)
	cmd.Flags().StringVarP(&toBlock, "to-block", "t", "", blockIDUsage)
	cmd.Flags().Uint64VarP(&chunkSize, "chunk-size", "s", 0, "The number of events returned per page.")
	cmd.Flags().StringVarP(&continuationToken, "continuation-token", "c",
		"", "A pointer to the last element of the delivered page, use this token in a subsequent query to obtain the next page.")
	if err := cmd.MarkFlagRequired("chunk-size"); err != nil {
		panic(err)
	}
	return cmd
}

func stateUpdateCmd(newProbe probeFn) *cobra.Command {
	var block string

	cmd := &cobra.Command{
		Use:   "state-update",
		Short: "Get the information about the result of executing the requested block.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			blockID, err := rpc.ParseBlockID(block)
			if err != nil {
				return err
			}
			p, err := newProbe()
			if err != nil {
				return err
			}
			out, err := p.StateUpdate(cmd.Context(), blockID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&block, "block", "b", "latest", blockIDUsage)
	return cmd
}

func classCmd(newProbe probeFn) *cobra.Command {
	return &cobra.Command{
		Use:     "class CLASS_HASH [BLOCK_ID]",
		Aliases: []string{"cl"},
		Short:   "Get the contract class definition associated with the given hash.",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			classHash, err := felt.Parse(args[0])
			if err != nil {
				return err
			}
			blockID, err := blockIDArg(args[1:])
			if err != nil {
				return err
			}
			p, err := newProbe()
			if err != nil {
				return err
			}
			out, err := p.Class(cmd.Context(), blockID, classHash)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func codeCmd(newProbe probeFn) *cobra.Command {
	var block string

	cmd := &cobra.Command{
		Use:     "code CONTRACT_ADDRESS",
		Aliases: []string{"cd"},
		Short:   "Get the contract class definition deployed at the given address.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contract, err := felt.Parse(args[0])
			if err != nil {
				return err
			}
			blockID, err := rpc.ParseBlockID(block)
			if err != nil {
				return err
			}
			p, err := newProbe()
			if err != nil {
				return err
			}
			out, err := p.ContractClass(cmd.Context(), blockID, contract)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&block, "block", "b", "latest", blockIDUsage)
	return cmd
}

func contractClassCmd(newProbe probeFn) *cobra.Command {
	var block string

	cmd := &cobra.Command{
		Use:     "contract-class CONTRACT_ADDRESS",
		Aliases: []string{"cc"},
		Short:   "Get the class hash of the contract deployed at the given address.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contract, err := felt.Parse(args[0])
			if err != nil {
				return err
			}
			blockID, err := rpc.ParseBlockID(block)
			if err != nil {
				return err
			}
			p, err := newProbe()
			if err != nil {
				return err
			}
			hash, err := p.ClassHash(cmd.Context(), blockID, contract)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}

	cmd.Flags().StringVarP(&block, "block", "b", "latest", blockIDUsage)
	return cmd
}

func ageCmd(newProbe probeFn) *cobra.Command {
	return &cobra.Command{
		Use:   "age [BLOCK_ID]",
		Short: "Get the timestamp of a block.",
		Long:  "Get the timestamp of a block. " + blockIDUsage,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blockID, err := blockIDArg(args)
			if err != nil {
				return err
			}
			p, err := newProbe()
			if err != nil {
				return err
			}
			ts, err := p.BlockTime(cmd.Context(), blockID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ts.Unix())
			return nil
		},
	}
}
