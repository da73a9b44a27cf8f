package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/input-output-hk/catalyst-forge-libs/labelsync/errors"
)

// MaxListKeys is the largest page the object store returns for a single listing.
const MaxListKeys = 1000

var regionPattern = regexp.MustCompile(`^[a-z]{2}(-[a-z]+)+-\d+$`)

// ValidateBucketName validates that a bucket name is DNS-compliant according to AWS S3 rules.
// Returns an error wrapping ErrInvalidBucketName if the bucket name is invalid.
func ValidateBucketName(bucket string) error {
	if err := validateBucketNameBasics(bucket); err != nil {
		return err
	}

	if err := validateBucketNameCharacters(bucket); err != nil {
		return err
	}

	return validateBucketNameStructure(bucket)
}

// ValidateObjectKey validates that an object key derived from a file name is usable.
func ValidateObjectKey(key string) error {
	if key == "" {
		return invalidKey("object key cannot be empty")
	}

	if key == "." || key == ".." {
		return invalidKey("object key cannot be a relative directory reference")
	}

	if strings.Contains(key, "/") {
		return invalidKey("object key cannot contain a path separator")
	}

	// S3 supports keys up to 1024 bytes
	if len(key) > 1024 {
		return invalidKey("object key cannot exceed 1024 characters")
	}

	for _, char := range key {
		if unicode.IsControl(char) {
			return invalidKey("object key cannot contain control characters")
		}
	}

	return nil
}

// ValidateACL validates a canned bucket ACL.
func ValidateACL(acl string) error {
	validACLs := map[string]bool{
		"private":            true,
		"public-read":        true,
		"public-read-write":  true,
		"authenticated-read": true,
	}

	if !validACLs[acl] {
		return fmt.Errorf("%w: ACL must be one of: private, public-read, public-read-write, authenticated-read",
			errors.ErrInvalidInput)
	}

	return nil
}

// ValidateRegion validates the shape of an AWS region name such as "us-west-2".
func ValidateRegion(region string) error {
	if !regionPattern.MatchString(region) {
		return fmt.Errorf("%w: region %q is not a valid AWS region name", errors.ErrInvalidInput, region)
	}
	return nil
}

// ValidateMaxKeys validates the object listing page size.
func ValidateMaxKeys(maxKeys int32) error {
	if maxKeys < 1 || maxKeys > MaxListKeys {
		return fmt.Errorf("%w: max keys must be between 1 and %d, got %d", errors.ErrInvalidInput, MaxListKeys, maxKeys)
	}
	return nil
}

// ValidateLabelParams validates the label detection request parameters.
// Confidence is on the service's 0-100 scale.
func ValidateLabelParams(maxLabels int32, minConfidence float32) error {
	if maxLabels < 1 {
		return fmt.Errorf("%w: max labels must be positive, got %d", errors.ErrInvalidInput, maxLabels)
	}
	if minConfidence < 0 || minConfidence > 100 {
		return fmt.Errorf("%w: min confidence must be between 0 and 100, got %v", errors.ErrInvalidInput, minConfidence)
	}
	return nil
}

func invalidKey(msg string) error {
	return fmt.Errorf("%w: %s", errors.ErrInvalidObjectKey, msg)
}

func invalidBucket(msg string) error {
	return fmt.Errorf("%w: %s", errors.ErrInvalidBucketName, msg)
}

// validateBucketNameBasics validates basic bucket name requirements
func validateBucketNameBasics(bucket string) error {
	if bucket == "" {
		return invalidBucket("bucket name cannot be empty")
	}

	// Bucket names must be between 3 and 63 characters long
	if len(bucket) < 3 || len(bucket) > 63 {
		return invalidBucket("bucket name must be between 3 and 63 characters long")
	}

	return nil
}

// validateBucketNameCharacters validates allowed characters in bucket names
func validateBucketNameCharacters(bucket string) error {
	for _, char := range bucket {
		if !isValidBucketChar(char) {
			return invalidBucket("bucket name can only contain lowercase letters, numbers, dots, and hyphens")
		}
	}

	return nil
}

// validateBucketNameStructure validates bucket name structural requirements
func validateBucketNameStructure(bucket string) error {
	first, last := bucket[0], bucket[len(bucket)-1]
	if first == '-' || first == '.' || last == '-' || last == '.' {
		return invalidBucket("bucket name cannot start or end with a hyphen or dot")
	}

	if isIPAddress(bucket) {
		return invalidBucket("bucket name cannot be formatted as an IP address")
	}

	if strings.Contains(bucket, "..") {
		return invalidBucket("bucket name cannot contain two adjacent periods")
	}

	if strings.HasPrefix(bucket, "xn--") {
		return invalidBucket("bucket name cannot start with the prefix xn--")
	}

	if strings.HasSuffix(bucket, "-s3alias") {
		return invalidBucket("bucket name cannot end with the suffix -s3alias")
	}

	return nil
}

// isValidBucketChar checks if a character is valid in a bucket name
func isValidBucketChar(char rune) bool {
	return (char >= '0' && char <= '9') || (char >= 'a' && char <= 'z') || char == '.' || char == '-'
}

// isIPAddress checks if a string is formatted as an IP address
func isIPAddress(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return false
	}

	for _, part := range parts {
		if part == "" || len(part) > 3 {
			return false
		}
		num := 0
		for _, char := range part {
			if char < '0' || char > '9' {
				return false
			}
			num = num*10 + int(char-'0')
		}
		if num > 255 {
			return false
		}
	}

	return true
}
