// cmd/tools/catalog-validator/main.go
//
// Validates the scheme catalog, intent lexicon and task registry files
// before deployment, so a bad edit fails in CI instead of at worker startup.
package main

import (
	"flag"
	"fmt"
	"os"

	"scheme-workers/internal/engine/eligibility"
	"scheme-workers/internal/engine/intent"
	"scheme-workers/pkg/registry"
)

func main() {
	catalogPath := flag.String("catalog", "configs/catalog.json", "Path to the scheme catalog file")
	lexiconPath := flag.String("lexicon", "", "Path to the intent lexicon file (optional)")
	registryPath := flag.String("registry", "", "Path to the task registry file (optional)")
	flag.Parse()

	failed := false

	catalog, err := eligibility.LoadCatalog(*catalogPath)
	if err != nil {
		fmt.Printf("FAIL catalog %s: %v\n", *catalogPath, err)
		failed = true
	} else {
		fmt.Printf("OK   catalog %s: %d programs (version %s)\n",
			*catalogPath, len(catalog.Programs), catalog.Version)
		for _, p := range catalog.Programs {
			var weightSum float64
			for _, c := range p.Criteria {
				weightSum += c.Weight
			}
			fmt.Printf("     - %s: %d criteria, weight sum %.2f\n", p.ProgramID, len(p.Criteria), weightSum)
		}
	}

	if *lexiconPath != "" {
		lexicon, err := intent.LoadLexicon(*lexiconPath)
		if err != nil {
			fmt.Printf("FAIL lexicon %s: %v\n", *lexiconPath, err)
			failed = true
		} else {
			fmt.Printf("OK   lexicon %s: %d entries\n", *lexiconPath, len(lexicon.Entries()))
		}
	}

	if *registryPath != "" {
		reg, err := registry.LoadRegistry(*registryPath)
		if err != nil {
			fmt.Printf("FAIL registry %s: %v\n", *registryPath, err)
			failed = true
		} else {
			fmt.Printf("OK   registry %s: %d tasks (version %s)\n",
				*registryPath, len(reg.Tasks), reg.Version)
		}
	}

	if failed {
		os.Exit(1)
	}
}
