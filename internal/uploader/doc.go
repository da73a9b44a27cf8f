// Package uploader puts local images that are missing from the bucket.
//
// All images are handled concurrently. The batch is all-or-nothing: the first
// failed read or put cancels the remaining work and is returned to the caller.
package uploader
