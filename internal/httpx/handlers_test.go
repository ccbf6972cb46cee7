package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tixhook/internal/models"
)

func TestHooksHandlerGet(t *testing.T) {
	h := &HooksHandler{
		All: func(r *http.Request) (map[int]string, error) {
			return map[int]string{models.PaymentCompleted: "https://hooks.example.org/done"}, nil
		},
	}

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/api/v1/hooks", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Hooks []hookEntry `json:"hooks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Hooks, 7)

	assert.Equal(t, "Cancelled", body.Hooks[0].Label)
	assert.Equal(t, models.PaymentCompleted, body.Hooks[1].Code)
	assert.Equal(t, "https://hooks.example.org/done", body.Hooks[1].URL)
	assert.Equal(t, "", body.Hooks[2].URL)
}

func TestHooksHandlerPut(t *testing.T) {
	var saved map[int]string
	h := &HooksHandler{
		Save: func(r *http.Request, in map[int]string) (map[int]string, error) {
			saved = in
			return map[int]string{models.PaymentCompleted: in[models.PaymentCompleted]}, nil
		},
	}

	body := `{"hooks":{"2":"https://hooks.example.org/done","4":"not a url"}}`
	rec := httptest.NewRecorder()
	h.Put(rec, httptest.NewRequest(http.MethodPut, "/api/v1/hooks", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://hooks.example.org/done", saved[models.PaymentCompleted])
	assert.Equal(t, "not a url", saved[models.PaymentFailed])
}

func TestHooksHandlerPutBadInput(t *testing.T) {
	h := &HooksHandler{}

	t.Run("bad json", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Put(rec, httptest.NewRequest(http.MethodPut, "/api/v1/hooks", strings.NewReader("{")))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non-numeric code", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Put(rec, httptest.NewRequest(http.MethodPut, "/api/v1/hooks", strings.NewReader(`{"hooks":{"completed":"https://x.example"}}`)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestFireHandler(t *testing.T) {
	t.Run("publishes event", func(t *testing.T) {
		var published models.Event[models.PaymentResultPayload]
		h := &FireHandler{
			Publish: func(r *http.Request, evt models.Event[models.PaymentResultPayload]) error {
				published = evt
				return nil
			},
		}

		body := `{"payment_token":"pay-1","result":2,"data":{"charge":{"currency":"usd"}}}`
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/fire", strings.NewReader(body)))

		require.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, "pay-1", published.PaymentToken)
		assert.Equal(t, models.PaymentCompleted, published.Payload.Result)
		assert.Equal(t, "payment.result", published.Type)
		assert.NotEmpty(t, published.ID)
	})

	t.Run("missing token rejected", func(t *testing.T) {
		h := &FireHandler{}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/fire", strings.NewReader(`{"result":2}`)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown result rejected", func(t *testing.T) {
		h := &FireHandler{}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/fire", strings.NewReader(`{"payment_token":"pay-1","result":99}`)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
