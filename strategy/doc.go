// Package strategy provides built-in selection strategy implementations.
//
// A selection strategy picks the smaller side of a split out of an ordered
// sequence of groups (or lines). The package includes two strategies:
//
//   - Windowed: One item per contiguous window (recommended, default)
//   - HashRank: Items with the smallest seeded hash
//
// # Strategy Selection Guide
//
// Windowed:
//   - Use when items are sorted along a meaningful dimension (e.g. mean year)
//   - Spreads the selection evenly along that dimension, an approximate stratified sample
//   - O(N), reproducible for a given seed
//
// HashRank:
//   - Use when membership must stay stable as unrelated items are added or removed
//   - Ignores input order, so no stratification
//   - Configuration: hash seed
//
// Custom strategies can be implemented by satisfying the types.SelectionStrategy interface.
package strategy
