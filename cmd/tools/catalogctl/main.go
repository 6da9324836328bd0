package main

import (
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aurachat/aura/backend/internal/model/catalog"
	"github.com/aurachat/aura/backend/internal/service/recommend"
)

var catalogPath string

var rootCmd = &cobra.Command{
	Use:   "catalogctl",
	Short: "Inspect the movie catalog",
	Long:  `Validates the movie catalog CSV and previews the recommendations each mood bucket produces.`,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load the catalog and report its mood buckets",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.LoadCSV(catalogPath)
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}

		moods := cat.Moods()
		sort.Strings(moods)

		fmt.Printf("%d entries, %d mood buckets\n", cat.Len(), len(moods))
		for _, mood := range moods {
			fmt.Printf("  %-10s %d\n", mood, len(cat.ByMood(mood)))
		}
		return nil
	},
}

var sampleCmd = &cobra.Command{
	Use:   "sample <mood>",
	Short: "Preview a random recommendation set for a mood bucket",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")

		cat, err := catalog.LoadCSV(catalogPath)
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}

		selector, err := recommend.NewSelector(cat, rand.New(rand.NewSource(time.Now().UnixNano())))
		if err != nil {
			return fmt.Errorf("failed to build selector: %w", err)
		}

		entries := selector.Select(args[0], count)
		if len(entries) == 0 {
			fmt.Printf("no entries for mood %q\n", args[0])
			return nil
		}
		for _, e := range entries {
			fmt.Printf("  %s (%s)\n", e.Title, strings.Join(e.Genres, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&catalogPath, "catalog", "c", "data/movies.csv", "Path to the catalog CSV")
	sampleCmd.Flags().IntP("count", "n", 5, "Number of entries to sample")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(sampleCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
