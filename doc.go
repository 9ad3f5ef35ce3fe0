// Package flexgp splits labeled datasets into two disjoint subsets, such as
// train and test, while keeping every group of related records on one side.
//
// Records are resolved to a group (for example the artist of a track) and a
// numeric sort key (for example the release year). Groups are ordered by their
// mean sort key and a windowed sampler picks one group per window, so both
// sides cover the whole sort-key range. Runs are reproducible: the same seed,
// input and target always produce the same output.
//
// # Quick Start
//
// Grouped split backed by the track metadata database:
//
//	import (
//	    "github.com/flexgp/flexgp"
//	    "github.com/flexgp/flexgp/source"
//	)
//
//	src, err := source.OpenSQLite(ctx, "track_metadata.db", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer src.Close()
//
//	splitter, err := flexgp.NewSplitter(src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := splitter.SplitGrouped(ctx, trackIDs, flexgp.Fraction(0.2), flexgp.SeedFromInt(42))
//	// res.Split holds ~20% of the tracks, res.Rest the remainder.
//
// Ungrouped split of plain lines (no lookups):
//
//	res, err := splitter.SplitLines(ctx, lines, flexgp.Count(1000), flexgp.SeedFromString("run-7"))
//
// Multi-output sampling without replacement:
//
//	out, err := splitter.Allocate(ctx, lines, []flexgp.Allocation{
//	    {Destination: "train.txt", Size: flexgp.Fraction(0.7)},
//	    {Destination: "valid.txt", Size: flexgp.Count(500)},
//	}, seed)
//
// # Selection Strategies
//
// The default strategy.Windowed walks the sorted groups in contiguous windows
// and picks one per window. strategy.HashRank picks the groups with the
// smallest seeded hash instead, which keeps membership stable when unrelated
// groups are added to the dataset:
//
//	splitter, err := flexgp.NewSplitter(src,
//	    flexgp.WithStrategy(strategy.NewHashRank(strategy.WithHashSeed(7))),
//	    flexgp.WithLogger(logger),
//	    flexgp.WithMetrics(flexgp.NewPrometheusMetrics(prometheus.DefaultRegisterer, "")),
//	)
//
// See cmd/flexgp-split for the command-line front end.
package flexgp
