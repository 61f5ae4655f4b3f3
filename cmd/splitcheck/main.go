// Command splitcheck computes a settlement from a receipt JSON file and a
// claims YAML file, without running the API server. Useful for eyeballing a
// split or reproducing a reported discrepancy.
//
// Usage:
//
//	splitcheck -receipt receipt.json -claims claims.yaml
//
// The receipt file uses the parser's shape:
//
//	{"items":[{"name":"Pizza","quantity":1,"price":20}],"tax":2,"total":22}
//
// The claims file lists participants and integer unit claims:
//
//	participants: [Alice, Bob]
//	claims:
//	  - {item: 0, participant: 0, units: 1}
//	  - {item: 0, participant: 1, units: 1}
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/checksplit/checksplit-backend/internal/domain/receipt"
	"github.com/checksplit/checksplit-backend/internal/domain/split"
)

type claimsFile struct {
	Participants []string `yaml:"participants"`
	Claims       []struct {
		Item        int `yaml:"item"`
		Participant int `yaml:"participant"`
		Units       int `yaml:"units"`
	} `yaml:"claims"`
}

func main() {
	receiptPath := flag.String("receipt", "", "path to receipt JSON file")
	claimsPath := flag.String("claims", "", "path to claims YAML file")
	flag.Parse()

	if *receiptPath == "" || *claimsPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*receiptPath, *claimsPath); err != nil {
		fmt.Fprintf(os.Stderr, "splitcheck: %v\n", err)
		os.Exit(1)
	}
}

func run(receiptPath, claimsPath string) error {
	receiptData, err := os.ReadFile(receiptPath)
	if err != nil {
		return fmt.Errorf("read receipt: %w", err)
	}
	var r receipt.Receipt
	if err := json.Unmarshal(receiptData, &r); err != nil {
		return fmt.Errorf("parse receipt: %w", err)
	}
	if len(r.Items) == 0 {
		return fmt.Errorf("receipt has no items")
	}

	claimsData, err := os.ReadFile(claimsPath)
	if err != nil {
		return fmt.Errorf("read claims: %w", err)
	}
	var cf claimsFile
	if err := yaml.Unmarshal(claimsData, &cf); err != nil {
		return fmt.Errorf("parse claims: %w", err)
	}

	assignments := split.NewAssignments(len(r.Items))
	for _, c := range cf.Claims {
		for u := 0; u < c.Units; u++ {
			if err := assignments.Increase(c.Item, c.Participant); err != nil {
				return fmt.Errorf("claim %+v: %w", c, err)
			}
		}
	}

	settlement, err := split.ComputeSettlement(&r, cf.Participants, assignments)
	if err != nil {
		return err
	}

	for _, p := range settlement.Participants {
		fmt.Printf("%s\n", p.Name)
		for _, it := range p.Items {
			shared := ""
			if it.SharedWithCount > 1 {
				shared = fmt.Sprintf("  (shared by %d)", it.SharedWithCount)
			}
			fmt.Printf("  %-24s %8.2f%s\n", it.Label, it.Cost, shared)
		}
		fmt.Printf("  %-24s %8.2f\n", "items", p.ItemsTotal)
		fmt.Printf("  %-24s %8.2f\n", "tax", p.TaxPortion)
		fmt.Printf("  %-24s %8.2f\n", "total", p.Total)
	}

	fmt.Printf("\nreceipt total %.2f, split total %.2f", settlement.OriginalTotal, settlement.SplitTotal)
	if drift := settlement.Drift(); drift != 0 {
		fmt.Printf(" (off by %+.2f)", drift)
	}
	fmt.Println()
	return nil
}
