// Package kspl implements the KursarScript execution engine. The
// language is line-oriented and class-based, with the following
// constructs:
//   - Class declarations via `class Name { ... }` holding `field name =
//     expr` defaults and `fn name(args...) { ... }` methods; `init` runs
//     as the constructor.
//   - Free functions via `fn name(args...) { ... }` with implicit
//     return of the last statement's value.
//   - Literals for ints, floats, strings (single or double quoted),
//     booleans, and null.
//   - Arithmetic and comparison expressions (+, -, *, /, <, >, <=, >=,
//     ==, !=), short-circuit && and ||, prefix ! and -, parentheses.
//   - Property access and assignment via dotted paths, and method calls
//     on instances and host values.
//   - Core builtins print, len, str, int, float, and bool; hosts
//     register further functions and values through one capability
//     interface.
//
// Lines beginning with `//` are ignored. The interpreter enforces a
// step quota and a recursion limit, rejecting scripts that exceed the
// configured execution bounds.
package kspl
