package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"rag-bot/internal/app"
	"rag-bot/internal/blob"
	"rag-bot/internal/cache"
	"rag-bot/internal/chunker"
	"rag-bot/internal/embeddings"
	"rag-bot/internal/httputil"
	"rag-bot/internal/localdocs"
	"rag-bot/internal/retry"
)

type chunkRequest struct {
	Text string `json:"text"`
}

type embedRequest struct {
	Text string `json:"text" validate:"required"`
}

type fileItem struct {
	Key          string     `json:"key"`
	Size         int64      `json:"size"`
	LastModified *time.Time `json:"last_modified,omitempty"`
	ETag         string     `json:"etag,omitempty"`
}

func main() {
	ctx := context.Background()
	deps, err := app.Build(ctx)
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}

	// Provision the bucket before accepting traffic.
	setupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	if err := deps.Blob.EnsureBucket(setupCtx); err != nil {
		cancel()
		deps.Log.Error("failed to provision bucket", "bucket", deps.Config.S3Bucket, "err", err)
		os.Exit(1)
	}
	cancel()

	r := httputil.NewRouter(deps.Log)

	r.Get("/", rootHandler())
	r.Get("/healthz", httputil.HealthHandler(deps.Log))

	r.Get("/s3/bucket/exists", bucketExistsHandler(deps))
	r.Get("/s3/bucket/files/count", bucketFilesCountHandler(deps))
	r.Get("/s3/files", listFilesHandler(deps))
	r.Get("/s3/file/content", fileContentHandler(deps))

	r.Post("/document/chunks", chunksHandler(deps))
	r.Post("/document/embed", embedHandler(deps))
	r.Get("/document/local-docs", localDocsHandler(deps))
	r.Get("/document/local-docs/content", localDocContentHandler(deps))

	addr := fmt.Sprintf(":%d", deps.Config.Port)
	deps.Log.Info("server listening", "addr", addr, "bucket", deps.Config.S3Bucket)
	if err := http.ListenAndServe(addr, r); err != nil {
		deps.Log.Error("server failed", "err", err)
	}
}

func rootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"message": "RAG bot backend is running.",
		})
	}
}

func bucketExistsHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bucket := deps.Config.S3Bucket
		exists, err := deps.Blob.BucketExists(r.Context(), bucket)
		if err != nil {
			blobFail(deps, w, "failed to check bucket", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"bucket_name": bucket,
			"exists":      exists,
		})
	}
}

func bucketFilesCountHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prefix := r.URL.Query().Get("prefix")
		objects, err := deps.Blob.List(r.Context(), prefix)
		if err != nil {
			blobFail(deps, w, "failed to count files", err)
			return
		}
		resp := map[string]any{
			"bucket_name": deps.Config.S3Bucket,
			"prefix":      nil,
			"count":       len(objects),
		}
		if prefix != "" {
			resp["prefix"] = prefix
		}
		httputil.WriteJSON(w, http.StatusOK, resp)
	}
}

func listFilesHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prefix := r.URL.Query().Get("prefix")
		objects, err := deps.Blob.List(r.Context(), prefix)
		if err != nil {
			blobFail(deps, w, "failed to list files", err)
			return
		}
		files := make([]fileItem, 0, len(objects))
		for _, obj := range objects {
			item := fileItem{Key: obj.Key, Size: obj.Size, ETag: obj.ETag}
			if !obj.LastModified.IsZero() {
				t := obj.LastModified
				item.LastModified = &t
			}
			files = append(files, item)
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"count": len(files),
			"files": files,
		})
	}
}

func fileContentHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fileName := r.URL.Query().Get("file_name")
		if fileName == "" {
			httputil.Fail(deps.Log, w, "file_name is required", nil, http.StatusBadRequest)
			return
		}
		content, err := deps.Blob.Get(r.Context(), fileName)
		if err != nil {
			blobFail(deps, w, "failed to fetch file content", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"filename": fileName,
			"content":  string(content),
		})
	}
}

func chunksHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chunkRequest
		body := http.MaxBytesReader(w, r.Body, deps.Config.MaxBodySize)
		if err := json.NewDecoder(body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}

		opts := chunker.Options{
			ChunkSize:    deps.Config.ChunkSize,
			ChunkOverlap: deps.Config.ChunkOverlap,
		}
		var err error
		if opts.ChunkSize, err = queryInt(r, "chunk_size", opts.ChunkSize); err != nil {
			httputil.Fail(deps.Log, w, "chunk_size must be an integer", err, http.StatusBadRequest)
			return
		}
		if opts.ChunkOverlap, err = queryInt(r, "chunk_overlap", opts.ChunkOverlap); err != nil {
			httputil.Fail(deps.Log, w, "chunk_overlap must be an integer", err, http.StatusBadRequest)
			return
		}

		chunks, err := chunker.Split(req.Text, opts)
		if err != nil {
			httputil.Fail(deps.Log, w, err.Error(), err, http.StatusBadRequest)
			return
		}
		if chunks == nil {
			chunks = []string{}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"count":         len(chunks),
			"chunk_size":    opts.ChunkSize,
			"chunk_overlap": opts.ChunkOverlap,
			"chunks":        chunks,
		})
	}
}

func embedHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req embedRequest
		body := http.MaxBytesReader(w, r.Body, deps.Config.MaxBodySize)
		if err := json.NewDecoder(body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}

		ctx := r.Context()
		key := cache.Key(deps.Config.EmbeddingModel, req.Text)
		if vec, err := deps.Cache.GetEmbedding(ctx, key); err != nil {
			deps.Log.Warn("embedding cache read failed", "err", err)
		} else if vec != nil {
			writeEmbedding(w, vec)
			return
		}

		var vec embeddings.Vector
		err := retry.Do(ctx, 3, 200*time.Millisecond, func() error {
			var embedErr error
			vec, embedErr = deps.Embedder.Embed(ctx, req.Text)
			return embedErr
		}, func(err error) bool {
			// Invalid input and rate limits are surfaced to the caller;
			// only provider hiccups are worth retrying here.
			return errors.Is(err, embeddings.ErrUnavailable)
		})
		if err != nil {
			status := http.StatusBadGateway
			switch {
			case errors.Is(err, embeddings.ErrInvalidInput):
				status = http.StatusBadRequest
			case errors.Is(err, embeddings.ErrRateLimited):
				status = http.StatusTooManyRequests
			}
			httputil.Fail(deps.Log, w, "failed to generate embedding", err, status)
			return
		}

		if err := deps.Cache.SetEmbedding(ctx, key, vec, deps.Config.CacheTTL); err != nil {
			deps.Log.Warn("embedding cache write failed", "err", err)
		}
		writeEmbedding(w, vec)
	}
}

func writeEmbedding(w http.ResponseWriter, vec embeddings.Vector) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"dimensions": len(vec),
		"embedding":  vec,
	})
}

func localDocsHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names, err := deps.Docs.List()
		if err != nil {
			if errors.Is(err, localdocs.ErrNotFound) {
				httputil.Fail(deps.Log, w, "docs folder not found", err, http.StatusNotFound)
				return
			}
			httputil.Fail(deps.Log, w, "failed to list local docs", err, http.StatusInternalServerError)
			return
		}
		if names == nil {
			names = []string{}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"count":     len(names),
			"documents": names,
		})
	}
}

func localDocContentHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filename := r.URL.Query().Get("filename")
		if filename == "" {
			httputil.Fail(deps.Log, w, "filename is required", nil, http.StatusBadRequest)
			return
		}
		content, err := deps.Docs.Content(filename)
		if err != nil {
			if errors.Is(err, localdocs.ErrNotFound) {
				httputil.Fail(deps.Log, w, "document not found", err, http.StatusNotFound)
				return
			}
			httputil.Fail(deps.Log, w, "failed to read document", err, http.StatusInternalServerError)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"filename": filename,
			"content":  content,
		})
	}
}

// blobFail maps blob store failures onto HTTP statuses: missing objects
// are the client's problem, credential issues and outages are not.
func blobFail(deps app.Deps, w http.ResponseWriter, message string, err error) {
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, blob.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, blob.ErrAccessDenied):
		status = http.StatusForbidden
	}
	httputil.Fail(deps.Log, w, message, err, status)
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
