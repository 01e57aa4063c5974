package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/folio-tools/pubsync/internal/catalog"
	"github.com/folio-tools/pubsync/internal/config"
	"github.com/folio-tools/pubsync/internal/projectstore"
	"github.com/folio-tools/pubsync/internal/publication"
)

var (
	listCategory string
	listYear     int
	listQuery    string
	listLimit    int
	listStats    bool
	listAll      bool
)

func init() {
	listCmd.Flags().StringVar(&listCategory, "category", "", "Only this category (e.g. domestic-journal)")
	listCmd.Flags().IntVar(&listYear, "year", 0, "Only this year")
	listCmd.Flags().StringVar(&listQuery, "query", "", "Substring of title, venue, or author")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum results to return (0 = all)")
	listCmd.Flags().BoolVar(&listStats, "stats", false, "Show counts per category instead of publications")
	listCmd.Flags().BoolVar(&listAll, "all", false, "Include project files outside the publication categories")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List publications from the project files",
	Long: `List publications from the project files, newest first.

Examples:
  pubsync list --human
  pubsync list --category international-conference --year 2024
  pubsync list --query lidar
  pubsync list --all
  pubsync list --stats --human`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	_, cfg := mustLoadConfig()
	logger := mustNewLogger(cfg)
	defer logger.Sync() //nolint:errcheck

	filter := mustParseFilter(listCategory, listYear, listQuery, listLimit)
	filter.PublicationsOnly = !listAll
	cat := mustOpenCatalog(cfg, logger)
	defer cat.Close()

	if listStats {
		counts, err := cat.CountByCategory()
		if err != nil {
			exitWithError(ExitError, "counting publications: %v", err)
		}
		if humanOutput {
			t := tableSpec{headers: []string{"Category", "Count"}, right: map[int]bool{1: true}}
			for _, c := range counts {
				name := c.Category
				if name == "" {
					name = "(none)"
				}
				t.rows = append(t.rows, []string{name, strconv.Itoa(c.Count)})
			}
			fmt.Println(t.render())
		} else {
			outputJSON(counts)
		}
		return nil
	}

	pubs, err := cat.List(filter)
	if err != nil {
		exitWithError(ExitError, "listing publications: %v", err)
	}

	if humanOutput {
		if len(pubs) == 0 {
			fmt.Println("No publications found")
			return nil
		}
		t := tableSpec{
			title:   fmt.Sprintf("%d publications", len(pubs)),
			headers: []string{"Year", "ID", "Category", "Title"},
			right:   map[int]bool{0: true},
		}
		for _, p := range pubs {
			year := ""
			if p.Year > 0 {
				year = strconv.Itoa(p.Year)
			}
			t.rows = append(t.rows, []string{year, p.ID, p.Category, truncateString(p.Title, ListTitleMaxLen)})
		}
		fmt.Println(t.render())
	} else {
		outputJSON(pubs)
	}
	return nil
}

// mustParseFilter validates list/export flags.
func mustParseFilter(category string, year int, query string, limit int) catalog.Filter {
	if category != "" && !publication.Category(category).Valid() {
		exitWithError(ExitError, "unknown category %q (valid: %v)", category, publication.Categories)
	}
	if year < 0 || limit < 0 {
		exitWithError(ExitError, "--year and --limit must not be negative")
	}
	return catalog.Filter{Category: category, Year: year, Query: query, Limit: limit}
}

// mustOpenCatalog loads the project files into an in-memory catalog.
func mustOpenCatalog(cfg config.Config, logger *zap.Logger) *catalog.Catalog {
	entries, excluded, err := projectstore.Scan(cfg.ProjectsDir)
	if err != nil {
		exitWithError(ExitError, "reading project files: %v", err)
	}
	for _, ex := range excluded {
		logger.Warn("project file excluded from catalog",
			zap.String("path", ex.Path),
			zap.String("reason", ex.Reason))
	}

	cat, err := catalog.Open()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	n, err := cat.Load(entries)
	if err != nil {
		cat.Close()
		exitWithError(ExitError, "loading catalog: %v", err)
	}
	if n < len(entries) {
		logger.Warn("duplicate project ids ignored", zap.Int("files", len(entries)), zap.Int("publications", n))
	}
	return cat
}
