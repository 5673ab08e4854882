// Package prompt provides simple interactive prompts.
//
// All prompts render to stderr so stdout stays clean for data, and detect
// the color profile of stderr.
//
// Available prompts:
//   - [Confirm]: Yes/No confirmation prompt
//   - [TextInput]: Single-line text input with validation and completion
//   - [Select]: Single selection from a filterable list
package prompt
