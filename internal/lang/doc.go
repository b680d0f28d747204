// Package lang holds the small language table shared by the translation,
// speech and summarization paths, and the script classifier used to reject
// translations that never reached the target writing system.
package lang
