//go:build ignore

package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// generateCatalog writes a sample seed catalogue for CATALOG_FILE, both plain
// and gzip-compressed, under data/catalog.
func main() {
	dataDir := "data/catalog"

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	products := []map[string]any{
		{"title": "Premium Budgie Seed Mix", "description": "A balanced blend of canary grass seed, millet and oats.", "price": 12.99, "category": "food"},
		{"title": "Millet Spray Treats", "description": "Natural golden millet sprays — perfect training reward.", "price": 6.49, "category": "treats"},
		{"title": "Cuttlebone", "description": "Calcium and minerals for healthy beaks.", "price": 2.5, "category": "health"},
		{"title": "Rope Ladder", "description": "Flexible cotton ladder for climbing.", "price": 8.75, "category": "toys"},
		{"title": "Mirror Bell Toy", "price": 4.99, "category": "toys", "in_stock": false},
	}

	for _, filename := range []string{"budgies.json", "budgies.json.gz"} {
		filePath := filepath.Join(dataDir, filename)

		if err := createCatalogFile(filePath, products); err != nil {
			log.Fatalf("Failed to create %s: %v", filename, err)
		}

		fmt.Printf("Created %s with %d products\n", filePath, len(products))
	}

	fmt.Println("\nSample catalogue files created successfully!")
	fmt.Println("Seed from one with: CATALOG_FILE=data/catalog/budgies.json.gz")
}

func createCatalogFile(filePath string, products []map[string]any) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	var w io.Writer = file
	if strings.HasSuffix(filePath, ".gz") {
		gzipWriter := gzip.NewWriter(file)
		defer gzipWriter.Close()
		w = gzipWriter
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(products); err != nil {
		return fmt.Errorf("failed to write catalogue: %w", err)
	}

	return nil
}
