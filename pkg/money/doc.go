// Package money parses and formats currency amounts typed into inputs marked
// data-enhance="money".
//
// Parsing keeps a single rule for ambiguous input: the separator that occurs
// last is the decimal point and every earlier separator groups thousands, so
// "1.234,56" and "1,234.56" both read as 1234.56. Display formatting uses one
// locale (pt-BR by default).
package money
