package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Icarus-afk/dist-ledger-sub000/internal/domain"
)

func newRulesCmd(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage and run business rules",
	}
	cmd.AddCommand(newRulesCreateCmd(opts), newRulesProcessCmd(opts))
	return cmd
}

func newRulesCreateCmd(opts *RootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Validate and publish a rule from a JSON file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			document, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			var rule domain.Rule
			rule.Enabled = true
			if err := json.Unmarshal(document, &rule); err != nil {
				return ExitError{Code: ExitInvalid, Kind: KindValidation,
					Message: fmt.Sprintf("rule file is not valid JSON: %v", err)}
			}

			a, err := buildApp(opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			result, err := a.rules.CreateRule(cmd.Context(), rule)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rule %s published (tx %s)\n", result.RuleID, result.TxID)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Path to the rule JSON document")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newRulesProcessCmd(opts *RootOptions) *cobra.Command {
	var (
		eventJSON string
		testOnly  bool
	)
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Evaluate an event against the stored rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var event map[string]any
			if err := json.Unmarshal([]byte(eventJSON), &event); err != nil {
				return ExitError{Code: ExitInvalid, Kind: KindValidation,
					Message: fmt.Sprintf("event is not valid JSON: %v", err)}
			}

			a, err := buildApp(opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			result, err := a.rules.ProcessEvent(cmd.Context(), event, testOnly)
			if err != nil {
				return err
			}

			if opts.JSONOutput {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(result)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d rules evaluated, %d matched\n",
				result.RulesEvaluated, result.RulesMatched)
			for _, outcome := range result.Outcomes {
				if outcome.Error != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s: failed: %s\n", outcome.RuleName, outcome.Error)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %s: %d actions executed\n",
					outcome.RuleName, outcome.ActionsExecuted)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&eventJSON, "event", "", "Event as a JSON object")
	cmd.Flags().BoolVar(&testOnly, "test", false, "Evaluate conditions without executing actions")
	_ = cmd.MarkFlagRequired("event")
	return cmd
}
