package history

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"

	"forgescope/internal/scoring"
	"forgescope/internal/session"
)

// jsonlHandler is a slog handler that writes records as bare JSON objects:
// time in "2006-01-02 15:04:05" format, no level field, all attributes at
// the top level. One record per line (JSONL).
type jsonlHandler struct {
	opts slog.HandlerOptions
	out  io.Writer
}

func newJSONLHandler(out io.Writer, opts *slog.HandlerOptions) *jsonlHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &jsonlHandler{opts: *opts, out: out}
}

// Handle serializes the record to a single JSON line.
func (h *jsonlHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any)
	attrs["time"] = r.Time.Format("2006-01-02 15:04:05")

	r.Attrs(func(a slog.Attr) bool {
		if a.Key != "" && a.Value.Any() != nil {
			attrs[a.Key] = a.Value.Any()
		}
		return true
	})

	data, err := json.Marshal(attrs)
	if err != nil {
		return err
	}
	_, err = h.out.Write(append(data, '\n'))
	return err
}

// WithAttrs is not supported
func (h *jsonlHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	panic("WithAttrs is not supported by jsonlHandler")
}

// WithGroup is not supported
func (h *jsonlHandler) WithGroup(name string) slog.Handler {
	panic("WithGroup is not supported by jsonlHandler")
}

// Enabled always returns true; the dataset keeps every record.
func (h *jsonlHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

// JsonHistoryRepository appends scoring passes to a JSONL file with rotation
// and compression via lumberjack. Suitable for long-term collection of how
// users weight the dataset.
type JsonHistoryRepository struct {
	lumberjack *lumberjack.Logger
	logger     *slog.Logger
}

// NewJsonHistoryRepository creates a history repository.
// Parameters:
// - file: path of the JSONL file
// - maxSize: maximum file size in MB before rotation
// - maxBackups: number of rotated files to keep
func NewJsonHistoryRepository(file string, maxSize, maxBackups int) *JsonHistoryRepository {
	repo := JsonHistoryRepository{}
	repo.lumberjack = &lumberjack.Logger{
		Filename:   file,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		Compress:   true,
	}

	handler := newJSONLHandler(repo.lumberjack, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	repo.logger = slog.New(handler)
	return &repo
}

// Append writes one scoring pass as a JSON line bound to the session token.
// Thread-safe through lumberjack and slog.
func (r *JsonHistoryRepository) Append(token string, weights scoring.WeightProfile, ctx scoring.CityContext, summary session.PassSummary) {
	r.logger.Info("",
		"token", token,
		"weights", map[string]float64(weights),
		"context", map[string]float64(ctx),
		"pass", summary,
	)
}

// Close closes the underlying file, completing pending rotation.
func (r *JsonHistoryRepository) Close() {
	r.lumberjack.Close()
}

// NopRepository discards every pass. Used when history collection is not
// configured.
type NopRepository struct{}

func (NopRepository) Append(string, scoring.WeightProfile, scoring.CityContext, session.PassSummary) {
}

func (NopRepository) Close() {}
