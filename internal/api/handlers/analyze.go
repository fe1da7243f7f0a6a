package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Joshspeakman/ebay-resale-analyzer/internal/market"
	"github.com/Joshspeakman/ebay-resale-analyzer/internal/metrics"
	"github.com/Joshspeakman/ebay-resale-analyzer/pkg/pricing"
	domain "github.com/Joshspeakman/ebay-resale-analyzer/pkg/types"
	"github.com/Joshspeakman/ebay-resale-analyzer/pkg/vision"
)

const tracerName = "github.com/Joshspeakman/ebay-resale-analyzer/internal/api/handlers"

// AnalyzeHandler orchestrates the full pipeline: photos in, identification,
// market snapshot, price recommendation out.
type AnalyzeHandler struct {
	identifier vision.Identifier
	provider   market.Provider
	maxUpload  int64
	maxImages  int
	log        *slog.Logger
}

// AnalyzeOption configures the AnalyzeHandler.
type AnalyzeOption func(*AnalyzeHandler)

// WithAnalyzeLogger sets the handler's logger.
func WithAnalyzeLogger(l *slog.Logger) AnalyzeOption {
	return func(h *AnalyzeHandler) {
		h.log = l
	}
}

// WithAnalyzeLimits overrides the per-photo byte cap and photo count cap.
func WithAnalyzeLimits(maxUpload int64, maxImages int) AnalyzeOption {
	return func(h *AnalyzeHandler) {
		h.maxUpload = maxUpload
		h.maxImages = maxImages
	}
}

// NewAnalyzeHandler creates a new AnalyzeHandler.
func NewAnalyzeHandler(identifier vision.Identifier, provider market.Provider, opts ...AnalyzeOption) *AnalyzeHandler {
	h := &AnalyzeHandler{
		identifier: identifier,
		provider:   provider,
		maxUpload:  10 << 20,
		maxImages:  vision.MaxImages,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// analyzeResponse is the full analysis result plus vision usage accounting.
type analyzeResponse struct {
	domain.AnalysisReport
	Usage vision.TokenUsage `json:"usage"`
}

// Analyze handles POST /api/v1/analyze: a multipart form with one to five
// "photo" files and a "condition" field.
func (h *AnalyzeHandler) Analyze(c echo.Context) error {
	start := time.Now()
	ctx, span := otel.Tracer(tracerName).Start(c.Request().Context(), "analyze",
		trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()

	// readImages writes the failure response itself; nil images means done.
	images, err := h.readImages(c)
	if images == nil {
		return err
	}
	cond := domain.NormalizeCondition(c.FormValue("condition"))
	span.SetAttributes(
		attribute.Int("analyze.images", len(images)),
		attribute.String("analyze.condition", string(cond)),
	)

	visionStart := time.Now()
	result, err := h.identifier.Identify(ctx, images)
	metrics.VisionDuration.Observe(time.Since(visionStart).Seconds())
	if err != nil {
		metrics.VisionFailuresTotal.Inc()
		return visionErrorResponse(c, err)
	}
	metrics.VisionTokensTotal.WithLabelValues("prompt").Add(float64(result.Usage.PromptTokens))
	metrics.VisionTokensTotal.WithLabelValues("completion").Add(float64(result.Usage.CompletionTokens))

	h.log.Info("item identified",
		"item", result.Item.ItemName,
		"brand", result.Item.Brand,
		"confidence", result.Item.Confidence,
		"cost_usd", result.Usage.CostUSD,
	)

	snap, err := h.provider.Snapshot(ctx, result.Item, cond)
	if err != nil {
		return marketErrorResponse(c, err)
	}

	rec := pricing.CalculateSuggestedPrice(*snap)
	metrics.RecommendationsTotal.WithLabelValues(string(rec.Confidence)).Inc()
	if rec.SuggestedPrice != nil {
		metrics.SuggestedPrice.Observe(*rec.SuggestedPrice)
	}
	metrics.AnalysisDuration.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, analyzeResponse{
		AnalysisReport: domain.AnalysisReport{
			Item:           result.Item,
			Market:         *snap,
			Recommendation: rec,
		},
		Usage: result.Usage,
	})
}

// readImages extracts and validates the uploaded photos.
func (h *AnalyzeHandler) readImages(c echo.Context) ([]vision.Image, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, c.JSON(http.StatusBadRequest,
			ErrorResponse{Error: "request must be multipart/form-data with a photo file"})
	}

	files := form.File["photo"]
	if len(files) == 0 {
		return nil, c.JSON(http.StatusBadRequest,
			ErrorResponse{Error: "at least one photo is required"})
	}
	if len(files) > h.maxImages {
		return nil, c.JSON(http.StatusBadRequest,
			ErrorResponse{Error: fmt.Sprintf("at most %d photos are accepted", h.maxImages)})
	}

	images := make([]vision.Image, 0, len(files))
	for _, fh := range files {
		if fh.Size > h.maxUpload {
			return nil, c.JSON(http.StatusRequestEntityTooLarge,
				ErrorResponse{Error: fmt.Sprintf("photo %q exceeds the %d byte limit", fh.Filename, h.maxUpload)})
		}

		img, err := readImage(fh)
		if err != nil {
			return nil, c.JSON(http.StatusInternalServerError,
				ErrorResponse{Error: "reading uploaded photo"})
		}

		if !strings.HasPrefix(img.MIMEType, "image/") {
			return nil, c.JSON(http.StatusUnsupportedMediaType,
				ErrorResponse{Error: fmt.Sprintf("photo %q is %s, not an image", fh.Filename, img.MIMEType)})
		}

		images = append(images, img)
	}
	return images, nil
}

func readImage(fh *multipart.FileHeader) (vision.Image, error) {
	f, err := fh.Open()
	if err != nil {
		return vision.Image{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return vision.Image{}, err
	}

	mime := fh.Header.Get("Content-Type")
	if mime == "" || mime == "application/octet-stream" {
		mime = http.DetectContentType(data)
	}

	return vision.Image{Data: data, MIMEType: mime}, nil
}

// visionErrorResponse maps identification failures onto HTTP statuses.
func visionErrorResponse(c echo.Context, err error) error {
	var upstream *vision.UpstreamError
	switch {
	case errors.Is(err, vision.ErrMissingAPIKey):
		return c.JSON(http.StatusServiceUnavailable,
			ErrorResponse{Error: "vision backend is not configured"})
	case errors.Is(err, vision.ErrNoImages), errors.Is(err, vision.ErrTooManyImages):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.As(err, &upstream):
		if upstream.RateLimited() {
			return c.JSON(http.StatusTooManyRequests,
				ErrorResponse{Error: "vision backend rate limited, retry later"})
		}
		return c.JSON(http.StatusBadGateway,
			ErrorResponse{Error: "vision backend error: " + err.Error()})
	default:
		// Empty responses and unparseable model output are upstream faults.
		return c.JSON(http.StatusBadGateway,
			ErrorResponse{Error: "vision identification failed: " + err.Error()})
	}
}

// marketErrorResponse maps snapshot failures onto HTTP statuses. Providers
// return degraded snapshots for most faults, so errors here are rare.
func marketErrorResponse(c echo.Context, err error) error {
	if errors.Is(err, market.ErrDailyBudgetExhausted) {
		return c.JSON(http.StatusTooManyRequests,
			ErrorResponse{Error: "daily search budget exhausted, retry later"})
	}
	return c.JSON(http.StatusBadGateway,
		ErrorResponse{Error: "market lookup failed: " + err.Error()})
}

// RegisterAnalyzeRoutes registers the analyze endpoint on the Echo router.
func RegisterAnalyzeRoutes(e *echo.Echo, h *AnalyzeHandler) {
	e.POST("/api/v1/analyze", h.Analyze)
}
