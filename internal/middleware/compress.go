package middleware

import (
	"io"
	"strconv"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

const (
	encodingBrotli = "br"
	encodingZstd   = "zstd"
	encodingGzip   = "gzip"
)

// 依序偏好
var supportedEncodings = []string{encodingBrotli, encodingZstd, encodingGzip}

type Compress struct{}

func NewCompress() *Compress {
	return &Compress{}
}

// CompressHandler 依 Accept-Encoding 壓縮回應；health / metrics / swagger 等路徑不壓
func (m *Compress) CompressHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if skipObservability(c.FullPath()) {
			c.Next()
			return
		}
		encoding := negotiateEncoding(c.GetHeader("Accept-Encoding"))
		if encoding == "" {
			c.Next()
			return
		}

		original := c.Writer
		writer := &compressWriter{ResponseWriter: original, encoding: encoding}
		c.Writer = writer
		defer func() {
			writer.close()
			c.Writer = original
		}()
		c.Next()
	}
}

// negotiateEncoding q=0 視為拒絕；未支援的編碼忽略
func negotiateEncoding(header string) string {
	if header == "" {
		return ""
	}
	accepted := map[string]bool{}
	for _, part := range strings.Split(header, ",") {
		name, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		accepted[name] = qualityOf(params) > 0
	}
	for _, encoding := range supportedEncodings {
		if accepted[encoding] {
			return encoding
		}
	}
	return ""
}

func qualityOf(params string) float64 {
	for _, param := range strings.Split(params, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
		if !ok || strings.TrimSpace(key) != "q" {
			continue
		}
		q, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0
		}
		return q
	}
	return 1
}

// compressWriter 第一次寫入 body 時才決定 header 並建立 encoder
type compressWriter struct {
	gin.ResponseWriter
	encoding string
	encoder  io.WriteCloser
}

func (w *compressWriter) Write(data []byte) (int, error) {
	if w.encoder == nil {
		if err := w.start(); err != nil {
			return 0, err
		}
	}
	return w.encoder.Write(data)
}

func (w *compressWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

func (w *compressWriter) Written() bool {
	return w.encoder != nil || w.ResponseWriter.Written()
}

func (w *compressWriter) Flush() {
	if flusher, ok := w.encoder.(interface{ Flush() error }); ok {
		_ = flusher.Flush()
	}
	w.ResponseWriter.Flush()
}

func (w *compressWriter) start() error {
	header := w.Header()
	// handler 自行編碼過的內容原樣輸出
	if header.Get("Content-Encoding") != "" {
		w.encoder = nopWriteCloser{w.ResponseWriter}
		return nil
	}
	header.Set("Content-Encoding", w.encoding)
	header.Add("Vary", "Accept-Encoding")
	header.Del("Content-Length")
	w.ResponseWriter.WriteHeaderNow()

	switch w.encoding {
	case encodingBrotli:
		w.encoder = brotli.NewWriterLevel(w.ResponseWriter, brotli.DefaultCompression)
	case encodingZstd:
		encoder, err := zstd.NewWriter(w.ResponseWriter, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return err
		}
		w.encoder = encoder
	default:
		encoder, err := gzip.NewWriterLevel(w.ResponseWriter, gzip.DefaultCompression)
		if err != nil {
			return err
		}
		w.encoder = encoder
	}
	return nil
}

func (w *compressWriter) close() {
	if w.encoder != nil {
		_ = w.encoder.Close()
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
