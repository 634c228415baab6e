package main

import (
	"github.com/NethermindEth/probe/probe"
	"github.com/NethermindEth/probe/rpc"
	"github.com/NethermindEth/probe/utils"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Version string

const (
	rpcURLF    = "rpc-url"
	verbosityF = "verbosity"

	rpcURLEnv = "STARKNET_RPC_URL"

	defaultRPCURL = "http://localhost:5050/rpc"

	rpcURLUsage    = "The Starknet JSON-RPC endpoint."
	verbosityUsage = "Verbosity of the logs. Options: debug, info, warn, error."
)

type config struct {
	RPCURL    string         `mapstructure:"rpc-url"`
	Verbosity utils.LogLevel `mapstructure:"verbosity"`
}

func NewCmd() *cobra.Command {
	cfg := new(config)

	probeCmd := &cobra.Command{
		Use:           "probe",
		Short:         "Utilities for querying Starknet and converting between its value representations.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultVerbosity := utils.INFO
	probeCmd.PersistentFlags().String(rpcURLF, defaultRPCURL, rpcURLUsage)
	probeCmd.PersistentFlags().Var(&defaultVerbosity, verbosityF, verbosityUsage)

	probeCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		v := viper.New()
		if err := v.BindPFlags(probeCmd.PersistentFlags()); err != nil {
			return err
		}
		if err := v.BindEnv(rpcURLF, rpcURLEnv); err != nil {
			return err
		}
		return v.Unmarshal(cfg, viper.DecodeHook(mapstructure.TextUnmarshallerHookFunc()))
	}

	newProbe := func() (*probe.Probe, error) {
		log, err := utils.NewZapLogger(cfg.Verbosity, true)
		if err != nil {
			return nil, err
		}
		return probe.New(rpc.NewClient(cfg.RPCURL, log), log), nil
	}

	probeCmd.AddCommand(
		toHexCmd(),
		toDecCmd(),
		maxFeltCmd(),
		maxSignedFeltCmd(),
		minSignedFeltCmd(),
		fromASCIICmd(),
		toASCIICmd(),
		splitU256Cmd(),
		keccakCmd(),
		pedersenCmd(),
		indexCmd(),
		computeAddressCmd(),
		callArrayCmd(),
		ecdsaCmd(),

		blockCmd(newProbe),
		blockNumberCmd(newProbe),
		chainIDCmd(newProbe),
		transactionCmd(newProbe),
		receiptCmd(newProbe),
		transactionCountCmd(newProbe),
		nonceCmd(newProbe),
		storageCmd(newProbe),
		callCmd(newProbe),
		balanceCmd(newProbe),
		eventsCmd(newProbe),
		stateUpdateCmd(newProbe),
		classCmd(newProbe),
		codeCmd(newProbe),
		contractClassCmd(newProbe),
		ageCmd(newProbe),
	)

	return probeCmd
}
