package morphfst_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/aretw0/morphfst"
	"github.com/aretw0/morphfst/pkg/adapters/memory"
)

// ExampleEngine_Realize compiles a two-line rule file into an in-memory store
// and realizes one form from it.
func ExampleEngine_Realize() {
	dir, err := os.MkdirTemp("", "morphfst-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	rulesPath := filepath.Join(dir, "morph.txt")
	content := "ser : soy+1S , eres+2S\nir : voy+1S , vas+2S\n"
	if err := os.WriteFile(rulesPath, []byte(content), 0644); err != nil {
		log.Fatal(err)
	}

	eng, err := morphfst.New(morphfst.WithStore(memory.NewStore()))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if _, err := eng.EnsureBuilt(ctx, rulesPath, "morph.fst"); err != nil {
		log.Fatal(err)
	}

	out, err := eng.Realize(ctx, "morph.fst", "ir+1S+voy")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Output:", out)

	_, err = eng.Realize(ctx, "morph.fst", "ir+3S+va")
	fmt.Println("Error:", err)
	// Output:
	// Output: ir1Svoy
	// Error: No valid path for symbol: 3
}
