package testutil

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/input-output-hk/catalyst-forge-libs/labelsync/internal/s3api"
)

// MemoryStore is an in-memory object store implementing S3API.
// It records every call so tests can assert on create and put traffic.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]map[string]storedObject

	// CreateBucketCalls counts CreateBucket invocations
	CreateBucketCalls int

	// PutKeys records the keys of every PutObject call, in call order
	PutKeys []string

	// CreateInputs records every CreateBucket request
	CreateInputs []*s3.CreateBucketInput
}

type storedObject struct {
	data        []byte
	contentType string
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{buckets: make(map[string]map[string]storedObject)}
}

// Seed creates bucket (if needed) and stores the given keys with empty bodies.
func (m *MemoryStore) Seed(bucket string, keys ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	objects, ok := m.buckets[bucket]
	if !ok {
		objects = make(map[string]storedObject)
		m.buckets[bucket] = objects
	}
	for _, k := range keys {
		objects[k] = storedObject{}
	}
}

// Object returns the stored body and content type of bucket/key.
func (m *MemoryStore) Object(bucket, key string) ([]byte, string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj, ok := m.buckets[bucket][key]
	return obj.data, obj.contentType, ok
}

// PutCount returns the number of PutObject calls observed.
func (m *MemoryStore) PutCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.PutKeys)
}

// ResetCalls clears recorded call history but keeps stored objects.
func (m *MemoryStore) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateBucketCalls = 0
	m.PutKeys = nil
	m.CreateInputs = nil
}

// ListBuckets lists the stored buckets in name order.
func (m *MemoryStore) ListBuckets(
	_ context.Context,
	_ *s3.ListBucketsInput,
	_ ...func(*s3.Options),
) (*s3.ListBucketsOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.buckets))
	for name := range m.buckets {
		names = append(names, name)
	}
	sort.Strings(names)

	out := &s3.ListBucketsOutput{}
	for _, name := range names {
		out.Buckets = append(out.Buckets, types.Bucket{Name: aws.String(name)})
	}
	return out, nil
}

// CreateBucket creates an empty bucket.
func (m *MemoryStore) CreateBucket(
	_ context.Context,
	params *s3.CreateBucketInput,
	_ ...func(*s3.Options),
) (*s3.CreateBucketOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateBucketCalls++
	m.CreateInputs = append(m.CreateInputs, params)

	name := aws.ToString(params.Bucket)
	if _, ok := m.buckets[name]; ok {
		return nil, &types.BucketAlreadyOwnedByYou{Message: aws.String("bucket exists")}
	}
	m.buckets[name] = make(map[string]storedObject)
	return &s3.CreateBucketOutput{}, nil
}

// ListObjectsV2 returns a single page of keys in lexical order.
func (m *MemoryStore) ListObjectsV2(
	_ context.Context,
	params *s3.ListObjectsV2Input,
	_ ...func(*s3.Options),
) (*s3.ListObjectsV2Output, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	objects, ok := m.buckets[aws.ToString(params.Bucket)]
	if !ok {
		return nil, &types.NoSuchBucket{Message: aws.String("no such bucket")}
	}

	keys := make([]string, 0, len(objects))
	for k := range objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	limit := len(keys)
	if params.MaxKeys != nil && int(*params.MaxKeys) < limit {
		limit = int(*params.MaxKeys)
	}

	out := &s3.ListObjectsV2Output{
		IsTruncated: aws.Bool(limit < len(keys)),
		KeyCount:    aws.Int32(int32(limit)),
	}
	for _, k := range keys[:limit] {
		out.Contents = append(out.Contents, types.Object{
			Key:  aws.String(k),
			Size: aws.Int64(int64(len(objects[k].data))),
		})
	}
	return out, nil
}

// PutObject stores the request body.
func (m *MemoryStore) PutObject(
	_ context.Context,
	params *s3.PutObjectInput,
	_ ...func(*s3.Options),
) (*s3.PutObjectOutput, error) {
	var data []byte
	if params.Body != nil {
		var err error
		data, err = io.ReadAll(params.Body)
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := aws.ToString(params.Key)
	objects, ok := m.buckets[aws.ToString(params.Bucket)]
	if !ok {
		return nil, &types.NoSuchBucket{Message: aws.String("no such bucket")}
	}
	objects[key] = storedObject{data: data, contentType: aws.ToString(params.ContentType)}
	m.PutKeys = append(m.PutKeys, key)
	return &s3.PutObjectOutput{ETag: aws.String(`"etag"`)}, nil
}

var _ s3api.S3API = (*MemoryStore)(nil)
