package httpx

import (
	"encoding/json"
	"net/http"
	"strconv"

	"tixhook/internal/models"
)

func Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type hookEntry struct {
	Code  int    `json:"code"`
	Label string `json:"label"`
	URL   string `json:"url,omitempty"`
}

// HooksHandler exposes the per-outcome webhook endpoint configuration.
type HooksHandler struct {
	All  func(r *http.Request) (map[int]string, error)
	Save func(r *http.Request, in map[int]string) (map[int]string, error)
}

func (h *HooksHandler) Get(w http.ResponseWriter, r *http.Request) {
	hooks, err := h.All(r)
	if err != nil {
		http.Error(w, "failed to load hooks", http.StatusInternalServerError)
		return
	}
	writeHooks(w, hooks)
}

// Put replaces the hook configuration. URLs failing validation are dropped
// silently, mirroring save-time validation on the host settings screen.
func (h *HooksHandler) Put(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Hooks map[string]string `json:"hooks"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	in := make(map[int]string, len(body.Hooks))
	for k, v := range body.Hooks {
		code, err := strconv.Atoi(k)
		if err != nil {
			http.Error(w, "invalid outcome code: "+k, http.StatusBadRequest)
			return
		}
		in[code] = v
	}

	kept, err := h.Save(r, in)
	if err != nil {
		http.Error(w, "failed to save hooks", http.StatusInternalServerError)
		return
	}
	writeHooks(w, kept)
}

func writeHooks(w http.ResponseWriter, hooks map[int]string) {
	entries := make([]hookEntry, 0, len(models.OutcomeLabels))
	for code := models.PaymentCancelled; code <= models.PaymentRefundFailed; code++ {
		entries = append(entries, hookEntry{Code: code, Label: models.OutcomeLabels[code], URL: hooks[code]})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string][]hookEntry{"hooks": entries})
}

// FireHandler injects a payment-result event by hand, the same path the host
// would publish on. Useful for wiring checks against a new hook endpoint.
type FireHandler struct {
	Publish func(r *http.Request, evt models.Event[models.PaymentResultPayload]) error
}

type fireReq struct {
	PaymentToken string         `json:"payment_token"`
	Result       int            `json:"result"`
	Data         map[string]any `json:"data"`
}

func (h *FireHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req fireReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.PaymentToken == "" {
		http.Error(w, "missing payment_token", http.StatusBadRequest)
		return
	}
	if _, ok := models.OutcomeLabels[req.Result]; !ok {
		http.Error(w, "unknown result code", http.StatusBadRequest)
		return
	}

	evt := models.NewPaymentResultEvent(req.PaymentToken, req.Result, req.Data)
	if err := h.Publish(r, evt); err != nil {
		http.Error(w, "failed to publish event", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(map[string]string{"id": evt.ID})
}
