package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"rag-bot/internal/app"
)

// sync uploads the local docs folder into the configured bucket so the
// service (and anything else reading the bucket) sees the same corpus.
func main() {
	prefix := flag.String("prefix", "", "object key prefix for uploaded docs")
	workers := flag.Int("workers", 4, "number of concurrent uploads")
	timeout := flag.Duration("timeout", 10*time.Minute, "overall sync timeout")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	deps, err := app.Build(ctx)
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	log := deps.Log.With("batch_id", uuid.New().String())

	if err := deps.Blob.EnsureBucket(ctx); err != nil {
		log.Error("failed to provision bucket", "bucket", deps.Config.S3Bucket, "err", err)
		os.Exit(1)
	}

	names, err := deps.Docs.List()
	if err != nil {
		log.Error("failed to list local docs", "dir", deps.Docs.Dir(), "err", err)
		os.Exit(1)
	}
	if len(names) == 0 {
		log.Info("nothing to upload", "dir", deps.Docs.Dir())
		return
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(*workers)
	for _, name := range names {
		g.Go(func() error {
			data, err := os.ReadFile(filepath.Join(deps.Docs.Dir(), name))
			if err != nil {
				return fmt.Errorf("read %s: %w", name, err)
			}
			key := path.Join(*prefix, name)
			contentType := mime.TypeByExtension(filepath.Ext(name))
			if err := deps.Blob.Put(ctx, key, data, contentType); err != nil {
				return fmt.Errorf("upload %s: %w", key, err)
			}
			log.Info("uploaded", "key", key, "bytes", len(data))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("sync failed", "err", err)
		os.Exit(1)
	}
	log.Info("sync complete", "files", len(names), "bucket", deps.Config.S3Bucket)
}
