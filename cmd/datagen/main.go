package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/smartshop/qaforge/internal/config"
	"github.com/smartshop/qaforge/internal/testdata"
)

var (
	green  = color.New(color.FgGreen, color.Bold)
	yellow = color.New(color.FgYellow, color.Bold)
	cyan   = color.New(color.FgCyan, color.Bold)
	bold   = color.New(color.Bold)
	dim    = color.New(color.Faint)
)

func main() {
	godotenv.Load()

	role := flag.String("role", "customer", "User role (customer, admin, vendor)")
	category := flag.String("category", "electronics", "Product category")
	count := flag.Int("count", 5, "Number of products to generate")
	terms := flag.Int("terms", 5, "Number of search terms to generate")
	feature := flag.String("scenarios", "", "Generate test scenarios for this feature (model only)")
	verbose := flag.Bool("verbose", false, "Verbose generator logging")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := zap.NewNop()
	if *verbose {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	bold.Println("SmartShop QA Forge: test data generator")
	dim.Printf("targets: site=%s api=%s\n", cfg.Targets.BaseURL, cfg.Targets.APIBaseURL)
	fmt.Println()

	gen := testdata.New(cfg.OpenAI, logger)
	ctx := context.Background()

	if gen.ModelAvailable() {
		if err := gen.CheckModel(ctx); err != nil {
			yellow.Printf("⚠ model credential check failed (%v), synthetic fallback will be used\n\n", err)
		} else {
			green.Printf("✓ model-backed generation available (%s)\n\n", cfg.OpenAI.Model)
		}
	} else {
		yellow.Println("⚠ no OPENAI_API_KEY configured, using synthetic generation only")
		fmt.Println()
	}

	cyan.Printf("User profile (%s)\n", *role)
	printJSON(gen.GenerateUserProfile(ctx, *role))

	cyan.Printf("\nProduct catalog (%s, %d items)\n", *category, *count)
	bar := progressbar.NewOptions(*count,
		progressbar.OptionSetDescription("   Generating..."),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
	)
	products := make([]testdata.Product, 0, *count)
	for i := 0; i < *count; i++ {
		products = append(products, gen.GenerateProductCatalog(ctx, *category, 1)...)
		bar.Add(1)
	}
	fmt.Println()
	printJSON(products)

	user := gen.GenerateUserProfile(ctx, testdata.RoleCustomer)
	cyan.Println("\nOrder")
	printJSON(gen.GenerateOrder(user, products))

	cyan.Printf("\nSearch terms (%d)\n", *terms)
	printJSON(gen.GenerateSearchTerms(*terms))

	if *feature != "" {
		cyan.Printf("\nTest scenarios (%s)\n", *feature)
		scenarios := gen.GenerateTestScenarios(ctx, *feature)
		if len(scenarios) == 0 {
			yellow.Println("   scenario generation unavailable without a working model client")
		} else {
			printJSON(scenarios)
		}
	}

	fmt.Println()
	green.Println("Done")
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%+v\n", v)
		return
	}
	fmt.Println(string(out))
}
