// Package ui provides the shared terminal styling for ltree's CLI output.
//
// # Color Scheme
//
// Colors are defined as ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)   - Successful operations
//	ColorError     (red)     - Failures and errors
//	ColorWarning   (yellow)  - Warnings
//	ColorMuted     (gray)    - Secondary text, notes
//	ColorWallet    (magenta) - Wallet rows
//	ColorAccount   (blue)    - Account rows
//	ColorAddress   (cyan)    - Address rows
//
// Use SetColorMode with the output.color setting, or DisableColors for
// --no-color.
//
// # Layout
//
// Fit and FitRight pad or truncate styled text to a column width, which is
// how the tree view lines up its columns. RenderSimpleTable prints a static
// Bubbles table for commands like 'ltree columns'.
package ui
