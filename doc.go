// Package arith implements a small arithmetic expression front end for
// embedding in larger programs.
//
// Expressions are decimal literals joined by the binary operators + - * and
// /. A literal may carry a leading minus sign. There is no operator
// precedence and there are no brackets: operators apply strictly from left
// to right, so "1 + 2 * 3" is 9, not 7.
//
// Parsing is a single pass over the input's runes which builds the
// expression tree as it goes. The parser stops at the first rune it cannot
// use. A parsed expression formats back to text with String and can be
// evaluated any number of times in an Env, which supplies the tolerance for
// division by zero.
package arith
