// Package models lists the OpenAI models visible to the configured key, so
// users can pick the chat model for summaries and the speech model for TTS.
package models
