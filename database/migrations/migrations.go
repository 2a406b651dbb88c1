// Package migrations holds the schema. Each file registers itself from
// init(); importing the package is enough for `foodhub migrate` to see it.
package migrations
