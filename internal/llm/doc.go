// Package llm wraps OpenAI chat completions for the two language model
// operations of the service: article summaries for narration and direct
// translation that bypasses the provider chain.
package llm
