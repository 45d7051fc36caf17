// Package gazetteer holds the lookup tables the pipeline is configured with:
// known venues keyed by name substring, tag synonym and keyword maps,
// canonical source labels, and the generic-location term list. Tables ship
// with Sandpoint defaults and can be overlaid from a YAML file.
package gazetteer
