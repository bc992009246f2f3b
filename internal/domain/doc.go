// Package domain models the synthetic town, population, and article records
// that make up a gazette dataset.
//
// # Generation Conventions
//
// All generated entities carry UUID identifiers except articles, which use
// human-readable IDs of the form "ART-<YYYYMMDDHHMMSS>-<suffix>". The
// timestamp comes from the package clock (swappable in tests via [SetClock]);
// the suffix keeps IDs unique when several articles are minted in the same
// second.
//
// Randomness never comes from global sources. Generators receive a seeded
// *rand.Rand so that the same seed reproduces the same town, population, and
// story seeds byte for byte. A seed of zero means "derive from the wall
// clock" and is the only non-reproducible mode.
//
// # Correlation Rules
//
// Population attributes are not sampled independently. Education, employment,
// marital status, income, and household size are all conditioned on age
// brackets, and temperament selection applies rule-based weight adjustments:
// a base weight of 1.0 per temperament type, shifted by age, education, and
// employment rules, floored at 0.1 so no type ever becomes impossible. The
// rule tables live in the gen package; this package only defines the record
// shapes they produce.
//
// # Story Seeds
//
// A StorySeed is the complete sampled input to one article: category, author
// voice, tone directive, and bounded samples of town features and residents.
// Feature samples are drawn without replacement, so a street or business
// never appears twice in the same seed.
package domain
