// file: cmd/root.go
// version: 1.2.0
// guid: 8b0d2f4a-6c9e-45b1-83d7-1f3b5d7c9a40

package cmd

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/booktime/booktime/internal/catalog"
	"github.com/booktime/booktime/internal/config"
	"github.com/booktime/booktime/internal/database"
	"github.com/booktime/booktime/internal/detector"
	"github.com/booktime/booktime/internal/models"
	"github.com/booktime/booktime/internal/openlibrary"
	"github.com/booktime/booktime/internal/relevance"
	"github.com/booktime/booktime/internal/search"
	"github.com/booktime/booktime/internal/server"
)

var cfgFile string
var databasePath string
var databaseType string
var enableSQLite bool
var catalogPath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "booktime",
	Short: "Track your book library and search it with series detection",
	Long: `BookTime tracks a personal book collection (novels, comics, manga),
imports books from Open Library, and searches the collection with a
series-aware ranking engine: queries that name a known series produce a
single series card instead of a pile of individual volumes.`,
}

// serveCmd starts the HTTP API server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the BookTime HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		if err := database.InitializeStore(config.AppConfig.DatabaseType, config.AppConfig.DatabasePath, config.AppConfig.EnableSQLite); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer database.CloseStore()

		fmt.Printf("Using database: %s (%s)\n", config.AppConfig.DatabasePath, config.AppConfig.DatabaseType)
		fmt.Printf("Series catalog: %d entries\n", cat.Len())

		remote := openlibrary.NewClientWithBaseURL(config.AppConfig.OpenLibraryBaseURL)
		srv := server.New(database.GlobalStore, cat, remote)
		return srv.Run(config.AppConfig.Host, config.AppConfig.Port)
	},
}

// searchCmd runs one search from the terminal
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the library and Open Library from the terminal",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		if err := database.InitializeStore(config.AppConfig.DatabaseType, config.AppConfig.DatabasePath, config.AppConfig.EnableSQLite); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer database.CloseStore()

		library, err := database.GlobalStore.GetAllBooks(0, 0)
		if err != nil {
			return fmt.Errorf("failed to load library: %w", err)
		}

		var remote []models.Book
		if !viper.GetBool("local_only") {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client := openlibrary.NewClientWithBaseURL(config.AppConfig.OpenLibraryBaseURL)
			remote, err = client.Search(ctx, query)
			if err != nil {
				return fmt.Errorf("remote search failed: %w", err)
			}
		}

		det := detector.New(cat)
		composer := search.NewComposer(cat, det, relevance.NewScorer())
		results := composer.Compose(query, remote, library)

		for _, r := range results {
			if r.IsSeriesCard && r.Card != nil {
				fmt.Printf("[SERIES] %-40s %s (%s, %d)\n", r.Card.Name, r.Card.Author, r.Card.Category, r.Card.Confidence)
			} else if r.Book != nil {
				owned := " "
				if r.Book.IsOwned {
					owned = "*"
				}
				fmt.Printf("%s %-40s %s (%s, %d)\n", owned, r.Book.Title, r.Book.Author, r.Book.CategoryBadge, r.Book.Relevance)
			}
		}
		fmt.Printf("%d results\n", len(results))
		return nil
	},
}

// detectCmd runs series detection on a single title/author pair
var detectCmd = &cobra.Command{
	Use:   "detect <title> [author]",
	Short: "Detect whether a book belongs to a known series",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		book := models.Book{Title: args[0]}
		if len(args) > 1 {
			book.Author = args[1]
		}

		result := detector.New(cat).Detect(book)
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

// importCmd bulk-loads books from a CSV export
var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import books from a CSV file (title,author,category,status,saga,volume,year)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		if err := database.InitializeStore(config.AppConfig.DatabaseType, config.AppConfig.DatabasePath, config.AppConfig.EnableSQLite); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer database.CloseStore()

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open import file: %w", err)
		}
		defer f.Close()

		records, err := readImportRecords(f)
		if err != nil {
			return err
		}

		det := detector.New(cat)
		bar := progressbar.Default(int64(len(records)), "importing")
		imported := 0
		for _, book := range records {
			if book.Saga == "" {
				if res := det.Detect(book); res.BelongsToSeries && res.Confidence >= detector.DefaultMaskConfidence {
					book.Saga = res.SeriesName
				}
			}
			if _, err := database.GlobalStore.CreateBook(&book); err != nil {
				return fmt.Errorf("failed to import %q: %w", book.Title, err)
			}
			imported++
			_ = bar.Add(1)
		}
		fmt.Printf("Imported %d books\n", imported)
		return nil
	},
}

// versionCmd prints the build version
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the BookTime version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("booktime %s\n", Version)
	},
}

// Version is set at build time via -ldflags.
var Version = "dev"

// readImportRecords parses the CSV body: a header row is detected and
// skipped, blank titles are rejected.
func readImportRecords(r io.Reader) ([]models.Book, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var books []models.Book
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV: %w", err)
		}
		line++
		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "title") {
			continue
		}
		if len(record) < 1 || strings.TrimSpace(record[0]) == "" {
			return nil, fmt.Errorf("line %d: missing title", line)
		}

		book := models.Book{
			Title:    strings.TrimSpace(record[0]),
			Category: models.CategoryRoman,
			Status:   models.StatusToRead,
			IsOwned:  true,
		}
		if len(record) > 1 {
			book.Author = strings.TrimSpace(record[1])
		}
		if len(record) > 2 && record[2] != "" {
			category := models.Category(strings.TrimSpace(record[2]))
			if !category.Valid() {
				return nil, fmt.Errorf("line %d: unknown category %q", line, record[2])
			}
			book.Category = category
		}
		if len(record) > 3 && record[3] != "" {
			status := models.Status(strings.TrimSpace(record[3]))
			if !status.Valid() {
				return nil, fmt.Errorf("line %d: unknown status %q", line, record[3])
			}
			book.Status = status
		}
		if len(record) > 4 {
			book.Saga = strings.TrimSpace(record[4])
		}
		if len(record) > 5 && record[5] != "" {
			if v, err := strconv.Atoi(strings.TrimSpace(record[5])); err == nil {
				book.VolumeNumber = v
			}
		}
		if len(record) > 6 && record[6] != "" {
			if y, err := strconv.Atoi(strings.TrimSpace(record[6])); err == nil {
				book.PublicationYear = y
			}
		}
		books = append(books, book)
	}
	return books, nil
}

// loadCatalog loads the configured series dataset (embedded by default).
func loadCatalog() (*catalog.Catalog, error) {
	if config.AppConfig.CatalogPath != "" {
		return catalog.LoadFile(config.AppConfig.CatalogPath)
	}
	return catalog.LoadDefault()
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.booktime.yaml)")
	rootCmd.PersistentFlags().StringVar(&databasePath, "database-path", "", "path to the database")
	rootCmd.PersistentFlags().StringVar(&databaseType, "database-type", "", "database backend: pebble (default) or sqlite")
	rootCmd.PersistentFlags().BoolVar(&enableSQLite, "enable-sqlite", false, "allow using the sqlite backend")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "path to a series catalog JSON file")

	_ = viper.BindPFlag("database_path", rootCmd.PersistentFlags().Lookup("database-path"))
	_ = viper.BindPFlag("database_type", rootCmd.PersistentFlags().Lookup("database-type"))
	_ = viper.BindPFlag("enable_sqlite3_i_know_the_risks", rootCmd.PersistentFlags().Lookup("enable-sqlite"))
	_ = viper.BindPFlag("catalog_path", rootCmd.PersistentFlags().Lookup("catalog"))

	serveCmd.Flags().Int("port", 8080, "port to listen on")
	_ = viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))

	searchCmd.Flags().Bool("local-only", false, "skip the Open Library call")
	_ = viper.BindPFlag("local_only", searchCmd.Flags().Lookup("local-only"))

	rootCmd.AddCommand(serveCmd, searchCmd, detectCmd, importCmd, versionCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigName(".booktime")
		}
	}

	viper.SetEnvPrefix("BOOKTIME")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	config.InitConfig()
}
