package main

import (
	"fmt"

	"github.com/NethermindEth/probe/core/crypto"
	"github.com/NethermindEth/probe/core/felt"
	"github.com/spf13/cobra"
)

func ecdsaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ecdsa",
		Aliases: []string{"ec"},
		Short:   "Perform ECDSA operations over the STARK-friendly elliptic curve.",
	}
	cmd.AddCommand(ecdsaSignCmd(), ecdsaVerifyCmd())
	return cmd
}

func ecdsaSignCmd() *cobra.Command {
	var message, privateKey string

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a message hash.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			msgHash, err := felt.Parse(message)
			if err != nil {
				return err
			}
			privKey, err := felt.Parse(privateKey)
			if err != nil {
				return err
			}
			sig, err := crypto.Sign(privKey, msgHash)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "r: %s\ns: %s\n", sig.R.String(), sig.S.String())
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Message hash to be signed.")
	cmd.Flags().StringVarP(&privateKey, "private-key", "p", "", "The private key for signing.")
	for _, flag := range []string{"message", "private-key"} {
		if err := cmd.MarkFlagRequired(flag); err != nil {
			panic(err)
		}
	}
	return cmd
}

func ecdsaVerifyCmd() *cobra.Command {
	var message, verifyingKey string
	var signature []string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify the signature of a message hash.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(signature) != 2 {
				return fmt.Errorf("expected signature as R,S but got %d value(s)", len(signature))
			}
			msgHash, err := felt.Parse(message)
			if err != nil {
				return err
			}
			pubKey, err := felt.Parse(verifyingKey)
			if err != nil {
				return err
			}
			r, err := felt.Parse(signature[0])
			if err != nil {
				return err
			}
			s, err := felt.Parse(signature[1])
			if err != nil {
				return err
			}

			valid, err := crypto.NewPublicKey(pubKey).Verify(&crypto.Signature{R: *r, S: *s}, msgHash)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), valid)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Message hash used in the signature.")
	cmd.Flags().StringSliceVarP(&signature, "signature", "s", nil, "The signature as R,S.")
	cmd.Flags().StringVarP(&verifyingKey, "verifying-key", "v", "", "The public key for verification.")
	for _, flag := range []string{"message", "signature", "verifying-key"} {
		if err := cmd.MarkFlagRequired(flag); err != nil {
			panic(err)
		}
	}
	return cmd
}
