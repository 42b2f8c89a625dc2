/*
Package fretwise recommends efficient sequences of fretted-instrument chord shapes.

Given named chords, each with several alternative fingerings ("variations"), fretwise
scores how costly it is, in hand and finger movement, to move between every candidate
pair of variations, ranks those transitions deterministically and picks one variation
per chord that transitions cheaply to the other chosen chords.

# Concept

The scoring core is pure and synchronous. Chord variations come from a driven port
(ports.VariationSource) so the same engine runs against an in-memory library, Redis,
SQLite or a directory of Markdown chord documents. Persistence of computed transitions
is optional and delegated to a ports.TransitionRecorder.

The selection is greedy: each chord's representative is chosen independently of the
other chords' representatives. It is not a global optimum over the chord sequence.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/fretwise"
		"github.com/aretw0/fretwise/pkg/adapters/memory"
		"github.com/aretw0/fretwise/pkg/seed"
	)

	func main() {
		ctx := context.Background()

		lib := memory.NewLibrary()
		if _, err := seed.NewSeeder(lib).Seed(ctx, seed.Sample()); err != nil {
			log.Fatal(err)
		}

		eng, err := fretwise.New(lib)
		if err != nil {
			log.Fatal(err)
		}

		rec, err := eng.Recommend(ctx, []string{"A", "D", "G"})
		if err != nil {
			log.Fatal(err)
		}
		for _, v := range rec.Picked {
			fmt.Println(v.Name, v.Positions)
		}
	}
*/
package fretwise
