/*
Package ports defines the driven ports (interfaces) for the fretwise engine.

These interfaces decouple the scoring core from external implementations, allowing
the engine to read chord variations from various backends (memory, Redis, SQLite,
Loam documents) and to hand computed transitions to a persistence collaborator.

# Key Interfaces

  - VariationSource: Lists the stored variations of a chord root, in stable order.
  - Catalog: Lists the chord roots a backend knows about.
  - Snapshotter: Freezes a source so a ranking run reads one consistent view.
  - VariationWriter: Persists seeded variations in batches.
  - TransitionRecorder: Persists ranked transitions of a chord pair.
  - DistributedLocker: Provides distributed locking for seeding across replicas.
*/
package ports
