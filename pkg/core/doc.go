// Package core defines the shared language of the nail system.
//
// This package contains:
//   - The runtime value model (Value, Ty)
//   - The command AST produced by pkg/parser (Command, Selection, Assignment)
//   - The expression AST evaluated by the engine (Expr, Operator)
//
// The Golden Rule: pkg/core imports ONLY pkg/token and stdlib.
// All other packages depend on core, not the reverse.
package core
