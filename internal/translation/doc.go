// Package translation translates free text through an ordered chain of
// keyless translation services. Each service is tried in turn until one
// returns a plausible translation; when every service fails the original text
// is handed back, so translation never blocks the narration pipeline.
package translation
