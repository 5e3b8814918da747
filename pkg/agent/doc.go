// Package agent talks to an OpenAI compatible chat completion endpoint.
//
// Generate is a thin prompt-in, text-out call. Describe builds on it to
// produce the summary and keywords stored with a job opening; the answer
// must contain a JSON object, optionally fenced or surrounded by prose.
// Every failure, including an unparseable answer, wraps ErrAgent so callers
// can fall back to locally derived metadata.
//
// With Config.Enabled unset the agent makes no requests and returns
// ErrDisabled.
package agent
