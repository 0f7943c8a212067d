package handler

import (
	"net/http"

	"github.com/eventops/api/internal/autospec"
	"github.com/eventops/api/internal/service"
	"github.com/eventops/api/internal/serviceware"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// CalcHandler exposes the stateless calculators. Nothing here is persisted.
type CalcHandler struct {
	validate *validator.Validate
}

// NewCalcHandler creates a new CalcHandler.
func NewCalcHandler(validate *validator.Validate) *CalcHandler {
	return &CalcHandler{validate: validate}
}

// RegisterRoutes registers calculator endpoints on the given Chi router.
// Expected to be mounted at /calc.
func (h *CalcHandler) RegisterRoutes(r chi.Router) {
	r.Post("/autospec", h.AutoSpec)
	r.Post("/autospec/batch", h.AutoSpecBatch)
	r.Post("/menu-item", h.MenuItem)
	r.Post("/buffet-split", h.BuffetSplit)
	r.Post("/time", h.Time)
	r.Post("/serviceware/autofill", h.ServicewareAutoFill)
	r.Post("/serviceware/format", h.ServicewareFormat)
	r.Post("/serviceware/parse", h.ServicewareParse)
}

// --- Request / Response types ---

type autoSpecRequest struct {
	ItemName   string `json:"item_name"`
	Category   string `json:"category"`
	GuestCount int    `json:"guest_count" validate:"max_guests"`
}

type batchItem struct {
	ID       string `json:"id"`
	ItemName string `json:"item_name"`
	Category string `json:"category"`
}

type autoSpecBatchRequest struct {
	GuestCount int         `json:"guest_count" validate:"max_guests"`
	Items      []batchItem `json:"items" validate:"required,max=500"`
}

type batchResult struct {
	ID       string        `json:"id,omitempty"`
	ItemName string        `json:"item_name"`
	Category string        `json:"category"`
	Spec     autospec.Spec `json:"spec"`
}

type autoSpecBatchResponse struct {
	Items       []batchResult `json:"items"`
	NeedsReview bool          `json:"needs_review"`
}

type menuItemRequest struct {
	FullName string `json:"full_name"`
}

type buffetSplitRequest struct {
	IDs []string `json:"ids" validate:"max=1000"`
}

type timeRequest struct {
	Time string `json:"time"`
}

type timeResponse struct {
	Formatted string `json:"formatted"`
}

type servicewareAutoFillRequest struct {
	PaperType                string `json:"paper_type"`
	ServicewareSource        string `json:"serviceware_source"`
	GuestCount               int    `json:"guest_count" validate:"gte=0,max_guests"`
	HasAppetizersAndDesserts bool   `json:"has_appetizers_and_desserts"`
	CarafesPerTable          int    `json:"carafes_per_table" validate:"gte=0,lte=20"`
}

type servicewareAutoFillResponse struct {
	Tier        string                  `json:"tier,omitempty"`
	Items       serviceware.Collections `json:"items"`
	Text        serviceware.Text        `json:"text"`
	ChinaCounts *serviceware.Counts     `json:"china_counts,omitempty"`
}

type servicewareFormatRequest struct {
	Items []serviceware.Item `json:"items"`
}

type servicewareFormatResponse struct {
	Text  string   `json:"text"`
	Lines []string `json:"lines"`
}

type servicewareParseRequest struct {
	Text string `json:"text"`
}

type servicewareParseResponse struct {
	Items []serviceware.Item `json:"items"`
}

// --- Handlers ---

// AutoSpec sizes one menu item.
func (h *CalcHandler) AutoSpec(w http.ResponseWriter, r *http.Request) {
	var req autoSpecRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}
	writeJSON(w, http.StatusOK, autospec.Calculate(req.ItemName, req.Category, req.GuestCount))
}

// AutoSpecBatch sizes a whole menu against one guest count.
func (h *CalcHandler) AutoSpecBatch(w http.ResponseWriter, r *http.Request) {
	var req autoSpecBatchRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	resp := autoSpecBatchResponse{Items: make([]batchResult, 0, len(req.Items))}
	for _, it := range req.Items {
		spec := autospec.Calculate(it.ItemName, it.Category, req.GuestCount)
		if spec.NeedsReview() {
			resp.NeedsReview = true
		}
		resp.Items = append(resp.Items, batchResult{
			ID:       it.ID,
			ItemName: it.ItemName,
			Category: it.Category,
			Spec:     spec,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// MenuItem splits a stored menu name into dish and sauce.
func (h *CalcHandler) MenuItem(w http.ResponseWriter, r *http.Request) {
	var req menuItemRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}
	writeJSON(w, http.StatusOK, autospec.ParseMenuItem(req.FullName))
}

// BuffetSplit divides buffet item ids between metal and china vessels.
func (h *CalcHandler) BuffetSplit(w http.ResponseWriter, r *http.Request) {
	var req buffetSplitRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}
	writeJSON(w, http.StatusOK, autospec.SplitBuffetItems(req.IDs))
}

// Time converts a 24-hour time to 12-hour display form.
func (h *CalcHandler) Time(w http.ResponseWriter, r *http.Request) {
	var req timeRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}
	writeJSON(w, http.StatusOK, timeResponse{Formatted: autospec.FormatTime(req.Time)})
}

// ServicewareAutoFill previews the generated lists without touching any
// event.
func (h *CalcHandler) ServicewareAutoFill(w http.ResponseWriter, r *http.Request) {
	var req servicewareAutoFillRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}
	if !service.AutoFillEnabled(req.ServicewareSource) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": service.ErrAutoFillDisabled.Error()})
		return
	}

	items := serviceware.AutoFill(req.PaperType, req.GuestCount, req.HasAppetizersAndDesserts, req.CarafesPerTable)
	resp := servicewareAutoFillResponse{Items: items, Text: items.Format()}
	if tier, ok := serviceware.ResolveTier(req.PaperType); ok {
		resp.Tier = string(tier)
		if tier == serviceware.TierChina {
			counts := serviceware.ChinaCounts(req.GuestCount)
			resp.ChinaCounts = &counts
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// ServicewareFormat serializes rows into the persisted line format.
func (h *CalcHandler) ServicewareFormat(w http.ResponseWriter, r *http.Request) {
	var req servicewareFormatRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}

	lines := make([]string, 0, len(req.Items))
	for _, it := range req.Items {
		if line := serviceware.FormatLine(it); line != "" {
			lines = append(lines, line)
		}
	}
	writeJSON(w, http.StatusOK, servicewareFormatResponse{
		Text:  serviceware.FormatLines(req.Items),
		Lines: lines,
	})
}

// ServicewareParse rebuilds rows from persisted text.
func (h *CalcHandler) ServicewareParse(w http.ResponseWriter, r *http.Request) {
	var req servicewareParseRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}
	writeJSON(w, http.StatusOK, servicewareParseResponse{Items: serviceware.ParseLines(req.Text)})
}
