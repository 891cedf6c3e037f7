// Package domain defines the core business types for the outreach planner.
//
// Types in this package are pure value objects with no behavior beyond
// validation and copying, no database dependencies, and no HTTP concerns.
// They are the shared language between the plan builder, the rule composer,
// the cost optimizer, and the evaluators.
//
// Rules for this package:
//   - No imports from other internal/ packages
//   - No *sql.DB, no http.Request, no context.Context in struct fields
//   - JSON/DB tags are allowed (they're metadata, not behavior)
//   - Validation methods are allowed (they're pure functions on the type)
//   - Constants and enums belong here
package domain
