// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the question-answering service.
//
// The service exposes a single endpoint, POST /ask, which accepts the user's
// question together with the conversation so far and returns one answer:
//
//	POST /ask
//	{"question": "hello", "conversation_history": [{"role": "user", "content": "hello"}]}
//
//	200 OK
//	{"answer": "hi!"}
//
// The same endpoint doubles as a liveness probe: Ping sends a fixed
// placeholder question and only looks at whether the request succeeded.
//
// # Errors
//
// Every failure is returned as a *ClientError whose Type tells transport
// failures, non-2xx statuses, and malformed bodies apart. Callers in this
// repository treat all of them the same way, but the type is kept for logs
// and for the status command's output.
package backend
