/*
Package namegen builds pronounceable random names that resemble a corpus of
example names, using order-k Markov chains over characters.

A NameSet couples a training multiset with the Markov model derived from it,
a length function used to rank candidates, and a history of produced names.
Histories can be linked across sets so related generators never repeat each
other. Set algebra (combine, subtract, union, intersect) merges training data
under multiset semantics, and a process-wide banned-word registry filters
every generated candidate.

Generation does not fail with an error: MakeName returns the empty string
when its attempt budget is exhausted, which callers should treat as a normal
outcome of restrictive settings rather than an exceptional one.
*/
package namegen
