// Example program demonstrating the rebaseplan library API.
//
// Run from the repo root:
//
//	go run ./example/ main
//
// It loads the commits between the given upstream and HEAD, applies
// autosquash, and prints the preview and the todo script.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/MyCarrier-DevOps/go-rebaseplan/pkg/sdk"
)

func main() {
	upstream := ""
	if len(os.Args) > 1 {
		upstream = os.Args[1]
	}

	p, err := sdk.Open(sdk.LocalOptions{
		Path:     ".",
		Upstream: upstream,
	})
	if err != nil {
		log.Fatalf("loading plan: %v", err)
	}

	if unmatched := p.ApplyAutosquash(); len(unmatched) > 0 {
		fmt.Printf("No autosquash target for: %v\n", unmatched)
	}

	fmt.Println("=== Preview ===")
	for _, row := range p.Preview() {
		switch {
		case row.HasError():
			fmt.Printf("  ! %-10s %s (%s)\n", row.ShortID, row.Summary, row.Error)
		case row.IsSquashed:
			fmt.Printf("    %-10s %s (+%v)\n", row.ShortID, row.Summary, row.SquashedFrom)
		default:
			fmt.Printf("    %-10s %s\n", row.ShortID, row.Summary)
		}
	}

	s := p.Stats()
	fmt.Printf("\n%d kept, %d squashed, %d dropped, %d reworded\n", s.Kept, s.Squashed, s.Dropped, s.Reworded)

	script, err := p.Todo()
	if err != nil {
		log.Fatalf("serializing plan: %v", err)
	}
	fmt.Println("\n=== Todo ===")
	fmt.Println(script)
}
