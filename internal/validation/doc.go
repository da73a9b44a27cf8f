// Package validation provides input validation for bucket names, object keys,
// bucket ACLs and label detection parameters.
package validation
