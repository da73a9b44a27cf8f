// Package labelsync uploads a directory of images to an S3 bucket, asks
// Amazon Rekognition for labels on every image and writes the results to a
// JSON document consumed by a static gallery page.
//
// A run is a one-shot batch:
//
//  1. The image directory is scanned and the bucket is ensured, concurrently.
//     A missing bucket is created; an existing one has its keys listed once.
//  2. Every image whose key is not already in the bucket is uploaded.
//  3. Labels are requested for every image, uploaded or not.
//  4. The labels document is written, replacing any previous one.
//
// Stages 2 and 3 fan out across all images. The first failure in any stage
// aborts the run and the labels document is left untouched.
//
// # Basic Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	syncer, err := labelsync.New(ctx, cfg, labelsync.WithLogger(logger))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := syncer.Run(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("labeled %d images\n", result.Labeled)
//
// # Testing
//
// NewWithClients accepts any S3 and Rekognition implementations, so tests can
// run the whole pipeline against in-memory fakes and a memfs filesystem:
//
//	syncer, err := labelsync.NewWithClients(store, recognizer, cfg,
//	    labelsync.WithFilesystem(memfs.New()),
//	)
//	if err != nil {
//	    t.Fatal(err)
//	}
package labelsync
