// Package merge is the top-level pipeline: it loads all raw sources, runs
// duplicate resolution and normalization, filters events outside the
// publishable window, partitions the survivors into production and review
// sets, validates times one last time, and persists the outputs with a
// statistical merge report.
package merge
