// Package mock provides test doubles for the ai interfaces.
//
// Mocks default to deterministic behavior (hash-derived embeddings, canned
// replies) and allow behavior injection via exported function fields.
// Constructors return concrete types so tests can assert on call counts and
// recorded arguments.
package mock
