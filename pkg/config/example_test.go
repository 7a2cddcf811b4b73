package config_test

import (
	"fmt"
	"log"

	"github.com/ajitpratap0/coltype/pkg/config"
)

// ExampleDefault shows the built-in defaults
func ExampleDefault() {
	cfg := config.Default()

	fmt.Printf("Log level: %s\n", cfg.Logging.Level)
	fmt.Printf("Max entry size: %d\n", cfg.Block.MaxEntrySize)
	fmt.Printf("Metrics namespace: %s\n", cfg.Metrics.Namespace)

	// Output:
	// Log level: info
	// Max entry size: 1073741824
	// Metrics namespace: coltype
}

// ExampleConfig_Validate shows how to validate a configuration before using it
func ExampleConfig_Validate() {
	cfg := config.Default()
	cfg.Registry.Preload = []string{"qdigest(double)", "tdigest(double)"}
	cfg.Registry.Seal = true

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	fmt.Println("Configuration is valid!")

	cfg.Registry.Preload = append(cfg.Registry.Preload, "qdigest(")
	fmt.Println(cfg.Validate() != nil)

	// Output:
	// Configuration is valid!
	// true
}

// ExampleBlockConfig_BuilderConfig converts the block section for a builder
func ExampleBlockConfig_BuilderConfig() {
	cfg := config.Default()
	cfg.Block.MaxEntrySize = 4096

	bc := cfg.Block.BuilderConfig()
	fmt.Printf("Expected entries: %d\n", bc.ExpectedEntries)
	fmt.Printf("Max entry size: %d\n", bc.MaxEntrySize)

	// Output:
	// Expected entries: 1024
	// Max entry size: 4096
}
