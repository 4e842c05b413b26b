/*
Package corpus handles training text for the name generator: loading
one-name-per-line files (with a Latin-1 fallback for spreadsheet exports),
cleaning stray punctuation out of raw lines, and persisting named corpora
in SQLite with order and duplicates preserved.

The stored representation is exactly the caller-supplied text, one name per
row; models and histories are never persisted and are always rebuilt from
the stored names.
*/
package corpus
