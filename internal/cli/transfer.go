package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Icarus-afk/dist-ledger-sub000/internal/app/transfer"
)

func newTransferCmd(opts *RootOptions) *cobra.Command {
	var (
		source   string
		target   string
		asset    string
		quantity float64
		metadata string
	)
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer an asset quantity between two chains",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var meta map[string]any
			if metadata != "" {
				if err := json.Unmarshal([]byte(metadata), &meta); err != nil {
					return ExitError{Code: ExitInvalid, Kind: KindValidation,
						Message: fmt.Sprintf("metadata is not valid JSON: %v", err)}
				}
			}

			a, err := buildApp(opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			result, err := a.transfers.Transfer(cmd.Context(), transfer.Request{
				SourceChain: source,
				TargetChain: target,
				AssetName:   asset,
				Quantity:    quantity,
				Metadata:    meta,
			})
			if err != nil {
				return err
			}

			if opts.JSONOutput {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(result)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "transfer %s completed: %s -> %s (%g %s)\n",
				result.TransferID, result.Source.Chain, result.Target.Chain, quantity, asset)
			return nil
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "Source chain")
	cmd.Flags().StringVar(&target, "target", "", "Target chain")
	cmd.Flags().StringVar(&asset, "asset", "", "Asset name")
	cmd.Flags().Float64Var(&quantity, "quantity", 0, "Quantity to transfer")
	cmd.Flags().StringVar(&metadata, "metadata", "", "Optional metadata as a JSON object")
	return cmd
}
