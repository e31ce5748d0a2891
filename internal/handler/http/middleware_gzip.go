package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5/middleware"
)

var gzipReaderPool = sync.Pool{
	New: func() any {
		return new(gzip.Reader)
	},
}

// compressResponses gzips JSON answers for clients sending Accept-Encoding.
var compressResponses = middleware.Compress(5, "application/json", "text/plain")

// withGZip inflates gzip request bodies and compresses responses.
func withGZip(next http.Handler) http.Handler {
	compressed := compressResponses(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Content-Encoding"), "gzip") || r.Body == nil {
			compressed.ServeHTTP(w, r)
			return
		}

		zr := gzipReaderPool.Get().(*gzip.Reader)
		if err := zr.Reset(r.Body); err != nil {
			gzipReaderPool.Put(zr)
			http.Error(w, "invalid gzip data", http.StatusBadRequest)
			return
		}
		defer func() {
			zr.Close()
			gzipReaderPool.Put(zr)
		}()

		r.Body = io.NopCloser(zr)
		r.Header.Del("Content-Encoding")
		r.ContentLength = -1
		compressed.ServeHTTP(w, r)
	})
}
