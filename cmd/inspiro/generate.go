package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sergiomago/inspiro/internal/config"
	"github.com/sergiomago/inspiro/internal/provider"
	"github.com/sergiomago/inspiro/internal/quote"
	"github.com/sergiomago/inspiro/internal/store"
	"github.com/sergiomago/inspiro/internal/types"
)

var (
	generateSource string
	generateTerm   string
	generateKind   string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a single quote and print it",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateSource, "source", "", "quote source: human, ai or mixed")
	generateCmd.Flags().StringVar(&generateTerm, "term", "", "search term to focus the quote on")
	generateCmd.Flags().StringVar(&generateKind, "kind", "", "what the term refers to: topic, author or keyword")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.ValidateForServe(); err != nil {
		return err
	}

	source, err := types.ParseSourcePreference(generateSource)
	if err != nil {
		return err
	}
	kind, err := types.ParseSearchKind(generateKind)
	if err != nil {
		return err
	}

	db, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	client, err := provider.NewClient(provider.Config{
		APIKey:  cfg.Provider.APIKey,
		BaseURL: cfg.Provider.BaseURL,
		Model:   cfg.Provider.Model,
		Timeout: time.Duration(cfg.Provider.Timeout),
	})
	if err != nil {
		return err
	}
	completer := provider.NewRetrying(client, cfg.Generation.ProviderRetries)

	generator := quote.NewGenerator(completer, db, quote.NewPool(), quote.Options{
		ClassicProbability:        cfg.Generation.ClassicProbability,
		AssumeUnusedOnLedgerError: cfg.Generation.OnLedgerError == config.AssumeUnused,
	})

	result, err := generator.Generate(cmd.Context(), types.GenerationRequest{
		Source:     source,
		SearchTerm: generateTerm,
		SearchKind: kind,
	})
	if err != nil {
		return err
	}

	if result.Exhausted {
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%q - %s\n", result.Quote.Text, result.Quote.Author)
	return nil
}
