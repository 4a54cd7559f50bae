// Package shared provides common utilities and test helpers used across the
// codebase. It serves as a central location for shared functionality that
// doesn't belong to any specific domain or architectural layer.
//
// # Structure
//
//   - testutil: testing utilities, currently a buffered slog handler and
//     log assertions used by several package test suites
//
// # Usage Guidelines
//
// This package should only contain test utilities used by multiple packages
// and generic helpers with no domain-specific logic. Business logic lives in
// the domain packages.
package shared
