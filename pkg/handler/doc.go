// Package handler tracks the stack of variables currently being
// generated, detects cyclic dependencies, and turns a failed
// generation attempt into a retry recommendation plus the list of
// variables the caller must roll back.
package handler
